package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/config"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UploadURLValidity is how long a presigned profile picture upload stays usable.
const UploadURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Presigner is implemented by *s3.PresignClient.
type Presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// NewS3Presigner builds a presign client for the S3-compatible backend in cfg.
func NewS3Presigner(ctx context.Context, cfg *config.Config) (*s3.PresignClient, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return s3.NewPresignClient(client), nil
}

// UploadURL is a presigned PUT for a profile picture.
type UploadURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   Presigner
	bucket      string
	now         func() time.Time
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, p Presigner, cfg *config.Config) *ProfileService {
	return &ProfileService{db: db, repomanager: m, presigner: p, bucket: cfg.S3Bucket, now: time.Now}
}

func ProfilePictureKey(userID string) string {
	return fmt.Sprintf("profile-pictures/%s/%s", userID, uuid.New())
}

// CreateProfilePictureUpload records a fresh key on the user and presigns an
// upload for it in one transaction, so the key is kept only when a URL was
// issued.
func (s *ProfileService) CreateProfilePictureUpload(ctx context.Context, userID string) (*UploadURL, error) {
	key := ProfilePictureKey(userID)
	bucket := s.bucket

	var url string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdateProfilePicture(ctx, userID, key, s.now().UTC()); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("%w: store picture key: %v", common.ErrorInternal, err)
		}

		req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(UploadURLValidity))
		if err != nil {
			return fmt.Errorf("%w: presign: %v", common.ErrorInternal, err)
		}
		url = req.URL
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: picture key tx: %v", common.ErrorInternal, err)
	}
	return &UploadURL{Key: key, URL: url}, nil
}
