package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/rides"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/users"
)

// memStore backs every repository with maps so handlers run against the
// real services.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	rides   []*models.Ride
	revoked map[string]time.Time
	failAll error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, revoked: map[string]time.Time{}}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository                 { return memUsers{m} }
func (m *memStore) Rides(dbx.DBTX) rides.Repository                 { return memRides{m} }
func (m *memStore) RevokedTokens(dbx.DBTX) revokedtokens.Repository { return memRevoked{m} }

type memUsers struct{ *memStore }

func (m memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	if _, ok := m.users[u.Email]; ok {
		return nil, common.ErrConflict
	}
	cp := *u
	cp.ID = fmt.Sprintf("u-%d", len(m.users)+1)
	m.users[u.Email] = &cp
	return &cp, nil
}

func (m memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (m memUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m memUsers) UpdateProfilePicture(ctx context.Context, id, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.ProfilePicture = key
			return nil
		}
	}
	return common.ErrorNotFound
}

type memRides struct{ *memStore }

func (m memRides) Create(ctx context.Context, r *models.Ride) (*models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	m.rides = append(m.rides, r)
	return r, nil
}

func (m memRides) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	for _, r := range m.rides {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memRevoked struct{ *memStore }

func (m memRevoked) Revoke(ctx context.Context, id string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = exp
	return nil
}

func (m memRevoked) IsRevoked(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, nil
}

func (m memRevoked) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
