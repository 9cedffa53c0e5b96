package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/labkeeper/internal/dbx"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/reservations"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/users"
	"github.com/dmitrijs2005/labkeeper/internal/storage"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

// runMigrations is a seam for testing storage.RunMigrations.
var runMigrations = storage.RunMigrations

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// Reservations returns a reservations.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Reservations(db dbx.DBTX) reservations.Repository {
	return reservations.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded schema to db.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
