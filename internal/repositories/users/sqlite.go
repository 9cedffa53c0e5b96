package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/dbx"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/storage"
)

// SQLiteRepository implements Repository over a dbx.DBTX.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, in models.UserInput, passwordHash string) (*models.User, error) {
	createdAt := r.now().UTC()

	query := `INSERT INTO users (username, password_hash, display_name, email, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		in.Username, passwordHash, in.DisplayName, nullString(in.Email), string(in.Role), storage.ToMillis(createdAt))
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	return &models.User{
		ID:          id,
		Username:    in.Username,
		DisplayName: in.DisplayName,
		Email:       in.Email,
		Role:        in.Role,
		CreatedAt:   storage.FromMillis(storage.ToMillis(createdAt)),
	}, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, username, display_name, email, role, created_at FROM users WHERE id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetCredentials(ctx context.Context, username string) (*models.Credentials, error) {
	query := `SELECT id, username, display_name, email, role, created_at, password_hash
		FROM users WHERE username = ?`

	var (
		c         models.Credentials
		email     sql.NullString
		role      string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&c.ID, &c.Username, &c.DisplayName, &email, &role, &createdAt, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	c.Email = email.String
	c.Role = models.Role(role)
	c.CreatedAt = storage.FromMillis(createdAt)
	return &c, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, username, display_name, email, role, created_at FROM users ORDER BY username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, in models.UserInput) (int64, error) {
	query := `UPDATE users SET username = ?, display_name = ?, email = ?, role = ? WHERE id = ?`
	return r.exec(ctx, query, in.Username, in.DisplayName, nullString(in.Email), string(in.Role), id)
}

func (r *SQLiteRepository) UpdateWithPassword(ctx context.Context, id int64, in models.UserInput, passwordHash string) (int64, error) {
	query := `UPDATE users SET username = ?, password_hash = ?, display_name = ?, email = ?, role = ? WHERE id = ?`
	return r.exec(ctx, query, in.Username, passwordHash, in.DisplayName, nullString(in.Email), string(in.Role), id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, common.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	return dbx.RowsAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var (
		u         models.User
		email     sql.NullString
		role      string
		createdAt int64
	)
	if err := s.Scan(&u.ID, &u.Username, &u.DisplayName, &email, &role, &createdAt); err != nil {
		return nil, err
	}
	u.Email = email.String
	u.Role = models.Role(role)
	u.CreatedAt = storage.FromMillis(createdAt)
	return &u, nil
}

// nullString stores an empty optional field as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
