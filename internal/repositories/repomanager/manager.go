// Package repomanager hands out repository implementations bound to a
// dbx.DBTX, so services can run the same repositories on the shared handle
// or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/labkeeper/internal/dbx"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/reservations"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Reservations(db dbx.DBTX) reservations.Repository
}
