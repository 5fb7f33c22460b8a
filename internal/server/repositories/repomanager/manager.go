package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/rides"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Rides(db dbx.DBTX) rides.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
