// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and the embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/migrations"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/rides"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

// Users returns the credential store bound to db.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Rides returns the ride store bound to db.
func (m *PostgresRepositoryManager) Rides(db dbx.DBTX) rides.Repository {
	return rides.NewPostgresRepository(db)
}

// RevokedTokens returns the token revocation list bound to db.
func (m *PostgresRepositoryManager) RevokedTokens(db dbx.DBTX) revokedtokens.Repository {
	return revokedtokens.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
