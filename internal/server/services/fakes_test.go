package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/events"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/rides"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/users"
)

// fakeUsersRepo is an in-memory users.Repository keyed by email.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int
	err     error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrConflict
	}
	f.nextID++
	cp := *u
	cp.ID = fmt.Sprintf("user-%d", f.nextID)
	f.byEmail[u.Email] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdateProfilePicture(ctx context.Context, id, key string, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			u.ProfilePicture = key
			u.UpdatedAt = updatedAt
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRidesRepo struct {
	created []*models.Ride
	err     error
}

func (f *fakeRidesRepo) Create(ctx context.Context, r *models.Ride) (*models.Ride, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeRidesRepo) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRevokedRepo struct {
	revoked    map[string]time.Time
	err        error
	deleted    int64
	deleteTime time.Time
}

func newFakeRevokedRepo() *fakeRevokedRepo {
	return &fakeRevokedRepo{revoked: map[string]time.Time{}}
}

func (f *fakeRevokedRepo) Revoke(ctx context.Context, id string, exp time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[id] = exp
	return nil
}

func (f *fakeRevokedRepo) IsRevoked(ctx context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[id]
	return ok, nil
}

func (f *fakeRevokedRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleteTime = now
	return f.deleted, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRidesRepo
	rt *fakeRevokedRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), r: &fakeRidesRepo{}, rt: newFakeRevokedRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) Rides(db dbx.DBTX) rides.Repository                 { return m.r }
func (m *fakeRepoManager) RevokedTokens(db dbx.DBTX) revokedtokens.Repository { return m.rt }

type fakePublisher struct {
	sent []events.RideRequested
	err  error
}

func (p *fakePublisher) PublishRideRequested(ctx context.Context, ev events.RideRequested) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, ev)
	return nil
}

func (p *fakePublisher) Close() error { return nil }
