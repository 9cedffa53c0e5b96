// Package services contains the LabKeeper business logic. This file
// implements UserService, the credential store: account management, the
// protected primordial administrator and password authentication.
package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/cryptox"
	"github.com/dmitrijs2005/labkeeper/internal/dbx"
	"github.com/dmitrijs2005/labkeeper/internal/logging"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/repomanager"
)

// UserService owns the users table.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService over the shared database handle.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h *cryptox.Hasher, log logging.Logger) *UserService {
	return &UserService{db: db, repomanager: m, hasher: h, log: log}
}

// Initialize seeds the primordial administrator when no "admin" row exists.
// An existing admin is left untouched, password hash included.
func (s *UserService) Initialize(ctx context.Context) error {
	var created bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		n, err := repo.CountByUsername(ctx, common.AdminUsername)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		admin := models.UserInput{
			Username:    common.AdminUsername,
			DisplayName: common.AdminDisplayName,
			Email:       common.AdminEmail,
			Role:        models.RoleAdmin,
		}
		if _, err := repo.Create(ctx, admin, s.hasher.Hash([]byte(common.AdminPassword))); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "failed to seed admin account", "error", err)
		return storeError("initialize users", err)
	}

	if created {
		s.log.Info(ctx, "seeded admin account", "username", common.AdminUsername)
	}
	return nil
}

// Create adds an account. A taken username yields common.ErrDuplicateUsername.
func (s *UserService) Create(ctx context.Context, in models.UserInput, password []byte) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	u, err := repo.Create(ctx, in, s.hasher.Hash(password))
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			s.log.Warn(ctx, "username already taken", "username", in.Username)
			return nil, err
		}
		s.log.Error(ctx, "failed to create user", "username", in.Username, "error", err)
		return nil, storeError("create user", err)
	}

	s.log.Info(ctx, "user created", "id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// List returns every account ordered by username.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to list users", "error", err)
		return nil, storeError("list users", err)
	}
	return list, nil
}

// Get returns the account with id, or common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "failed to get user", "id", id, "error", err)
		return nil, storeError("get user", err)
	}
	return u, nil
}

// Update overwrites every mutable field of the account. With changePassword
// the password is rehashed from newPassword as well. A stale id yields
// common.ErrorNotFound and a username taken by another row
// common.ErrDuplicateUsername. The primordial administrator keeps its
// username and role: changing either yields common.ErrProtectedIdentity.
func (s *UserService) Update(ctx context.Context, id int64, in models.UserInput, changePassword bool, newPassword []byte) error {
	var hash string
	if changePassword {
		hash = s.hasher.Hash(newPassword)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		cur, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur.Username == common.AdminUsername &&
			(in.Username != common.AdminUsername || in.Role != models.RoleAdmin) {
			return common.ErrProtectedIdentity
		}

		var n int64
		if changePassword {
			n, err = repo.UpdateWithPassword(ctx, id, in, hash)
		} else {
			n, err = repo.Update(ctx, id, in)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return common.ErrorNotFound
		}
		return nil
	})

	switch {
	case err == nil:
		s.log.Info(ctx, "user updated", "id", id, "username", in.Username, "password_changed", changePassword)
		return nil
	case errors.Is(err, common.ErrDuplicateUsername):
		s.log.Warn(ctx, "username already taken", "id", id, "username", in.Username)
		return err
	case errors.Is(err, common.ErrProtectedAccount):
		s.log.Warn(ctx, "refused to rename or demote protected account", "id", id)
		return err
	case errors.Is(err, common.ErrorNotFound):
		return err
	}
	s.log.Error(ctx, "failed to update user", "id", id, "error", err)
	return storeError("update user", err)
}

// Delete removes the account with id. The primordial administrator is
// refused with common.ErrProtectedAccount and stays intact.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u.Username == common.AdminUsername {
			return common.ErrProtectedAccount
		}
		return repo.Delete(ctx, id)
	})

	switch {
	case err == nil:
		s.log.Info(ctx, "user deleted", "id", id)
		return nil
	case errors.Is(err, common.ErrProtectedAccount):
		s.log.Warn(ctx, "refused to delete protected account", "id", id)
		return err
	case errors.Is(err, common.ErrorNotFound):
		return err
	}
	s.log.Error(ctx, "failed to delete user", "id", id, "error", err)
	return storeError("delete user", err)
}

// Authenticate checks username and password. Unknown users and wrong
// passwords both yield common.ErrInvalidCredentials after one hash
// computation.
func (s *UserService) Authenticate(ctx context.Context, username string, password []byte) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	c, err := repo.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = cryptox.VerifyPassword(password, s.getDummyHash())
			s.log.Warn(ctx, "login failed", "username", username)
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "failed to load credentials", "error", err)
		return nil, storeError("authenticate", err)
	}

	ok, err := s.hasher.Verify(password, c.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash is unreadable", "id", c.ID, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		s.log.Warn(ctx, "login failed", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	s.log.Info(ctx, "login succeeded", "id", c.ID, "username", c.Username)
	u := c.User
	return &u, nil
}

// getDummyHash returns a hash with the service parameters, verified against
// when the username is unknown.
func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash = s.hasher.Hash(common.GenerateRandByteArray(16))
	})
	return s.dummyHash
}
