package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/qdrive/internal/client/api"
	"github.com/dmitrijs2005/qdrive/internal/client/config"
	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	loggedIn     bool
	secureCookie bool
	err      error

	registered api.RegisterRequest
	pickup     api.Point
	dest       api.Point
	uploaded   []byte
	uploadURL  string
}

func (f *fakeAPI) LoggedIn() bool { return f.loggedIn }

func (f *fakeAPI) Register(ctx context.Context, in api.RegisterRequest) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = in
	return &api.User{ID: "u1", Email: in.Email, Role: in.Role}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = !f.secureCookie
	return &api.User{ID: "u1", Email: email, Name: "Ann", Role: "passenger"}, nil
}

func (f *fakeAPI) Me(ctx context.Context) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: "u1", Email: "a@example.com", Name: "Ann", Role: "driver", LicenseNumber: "L-1", ProfilePicture: "profile-pictures/u1/x"}, nil
}

func (f *fakeAPI) RequestRide(ctx context.Context, pickup, destination api.Point) (*api.Ride, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.pickup, f.dest = pickup, destination
	return &api.Ride{ID: "r1", Status: "requested"}, nil
}

func (f *fakeAPI) GetRide(ctx context.Context, id string) (*api.Ride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.Ride{ID: id, Status: "requested", Pickup: api.Point{Latitude: 1, Longitude: 2}}, nil
}

func (f *fakeAPI) ProfilePictureUploadURL(ctx context.Context) (*api.UploadURL, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.UploadURL{Key: "profile-pictures/u1/x", URL: "http://s3/put"}, nil
}

func (f *fakeAPI) UploadToPresignedURL(ctx context.Context, url string, data []byte) error {
	f.uploadURL, f.uploaded = url, data
	return nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.loggedIn = false
	return nil
}

func newTestApp(t *testing.T, input string) (*App, *fakeAPI, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { readPassword = old })

	fa := &fakeAPI{}
	out := &bytes.Buffer{}
	return &App{client: fa, reader: rdr(input), out: out}, fa, out
}

func TestNewApp(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	a, err := NewApp(c)
	require.NoError(t, err)
	assert.False(t, a.isLoggedIn())

	_, err = NewApp(&config.Config{ServerURL: "ftp://x"})
	assert.Error(t, err)
}

func TestApp_RegisterDriver(t *testing.T) {
	a, fa, out := newTestApp(t, "d@example.com\nDan\n555\ndriver\nL-42\n")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, api.RegisterRequest{
		Email: "d@example.com", Password: "secret", Name: "Dan", Phone: "555", Role: "driver", LicenseNumber: "L-42",
	}, fa.registered)
	assert.Contains(t, out.String(), "Registered d@example.com as driver")
}

func TestApp_RegisterFailure(t *testing.T) {
	a, fa, out := newTestApp(t, "p@example.com\nPat\n555\npassenger\n")
	fa.err = &api.APIError{Status: 409, Message: "User with this email already exists"}

	err := a.Register(context.Background())
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Contains(t, out.String(), "error: User with this email already exists")
}

func TestApp_LoginMeRideAvatarLogout(t *testing.T) {
	a, fa, out := newTestApp(t, "a@example.com\n1,2\n3,4\n")
	ctx := context.Background()

	assert.Error(t, a.Me(ctx))

	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, " (a@example.com passenger)", a.status())

	require.NoError(t, a.Me(ctx))
	assert.Contains(t, out.String(), "Ann <a@example.com>")
	assert.Contains(t, out.String(), "license: L-1")

	require.NoError(t, a.Ride(ctx))
	assert.Equal(t, api.Point{Latitude: 1, Longitude: 2}, fa.pickup)
	assert.Equal(t, api.Point{Latitude: 3, Longitude: 4}, fa.dest)
	assert.Contains(t, out.String(), "Ride r1 requested")

	require.NoError(t, a.Status(ctx, "r1"))
	assert.Contains(t, out.String(), "Ride r1: requested")
	assert.Contains(t, out.String(), "pickup:      1.000000,2.000000")

	pic := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(pic, []byte("png"), 0o600))
	require.NoError(t, a.Avatar(ctx, pic))
	assert.Equal(t, "http://s3/put", fa.uploadURL)
	assert.Equal(t, []byte("png"), fa.uploaded)

	assert.Error(t, a.Avatar(ctx, filepath.Join(t.TempDir(), "missing")))

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.status())
}

func TestApp_LoginFailure(t *testing.T) {
	a, fa, _ := newTestApp(t, "a@example.com\n")
	fa.err = errors.New("boom")

	assert.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestApp_LoginSecureCookieOverHTTP(t *testing.T) {
	a, fa, out := newTestApp(t, "a@example.com\n")
	fa.secureCookie = true

	err := a.Login(context.Background())
	assert.ErrorIs(t, err, errInsecureSession)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "-env development")
}

func TestApp_RideBadInput(t *testing.T) {
	a, fa, _ := newTestApp(t, "a@example.com\nnope\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	assert.Error(t, a.Ride(ctx))
	assert.Equal(t, api.Point{}, fa.pickup)
}
