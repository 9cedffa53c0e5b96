// Package users persists LabKeeper accounts in the users table.
//
// Duplicate usernames are reported as common.ErrDuplicateUsername and
// missing rows as common.ErrorNotFound; any other failure is wrapped.
package users

import (
	"context"

	"github.com/dmitrijs2005/labkeeper/internal/models"
)

// Repository describes the operations on the users table.
type Repository interface {
	// Create inserts a user with an already hashed password and returns it
	// with its assigned id and creation time.
	Create(ctx context.Context, in models.UserInput, passwordHash string) (*models.User, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetCredentials returns the user together with its password hash.
	GetCredentials(ctx context.Context, username string) (*models.Credentials, error)

	// List returns all users ordered by username ascending.
	List(ctx context.Context) ([]models.User, error)

	// Update overwrites the mutable fields. It returns the number of rows
	// matched, which is zero for an unknown id.
	Update(ctx context.Context, id int64, in models.UserInput) (int64, error)

	// UpdateWithPassword is Update plus a new password hash.
	UpdateWithPassword(ctx context.Context, id int64, in models.UserInput, passwordHash string) (int64, error)

	Delete(ctx context.Context, id int64) error

	CountByUsername(ctx context.Context, username string) (int, error)
}
