package users

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	r.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return r, db
}

var ana = models.UserInput{Username: "ana", DisplayName: "Ana Ruiz", Email: "ana@lab.edu", Role: models.RoleUser}

func TestCreate_GetByID_RoundTrip(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, ana, "hash-1")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestCreate_EmptyEmailStoredAsNull(t *testing.T) {
	r, db := newRepo(t)
	ctx := context.Background()

	in := ana
	in.Email = ""
	u, err := r.Create(ctx, in, "h")
	require.NoError(t, err)

	var email sql.NullString
	require.NoError(t, db.QueryRow(`SELECT email FROM users WHERE id = ?`, u.ID).Scan(&email))
	assert.False(t, email.Valid)
}

func TestCreate_Duplicate(t *testing.T) {
	r, db := newRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, ana, "hash-1")
	require.NoError(t, err)

	other := ana
	other.DisplayName = "Someone Else"
	_, err = r.Create(ctx, other, "hash-2")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	var name, hash string
	require.NoError(t, db.QueryRow(`SELECT display_name, password_hash FROM users WHERE username = 'ana'`).Scan(&name, &hash))
	assert.Equal(t, "Ana Ruiz", name)
	assert.Equal(t, "hash-1", hash)
}

func TestUsernameIsCaseSensitive(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, ana, "h")
	require.NoError(t, err)

	upper := ana
	upper.Username = "ANA"
	_, err = r.Create(ctx, upper, "h")
	require.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetCredentials(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, ana, "hash-1")
	require.NoError(t, err)

	c, err := r.GetCredentials(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, *u, c.User)
	assert.Equal(t, "hash-1", c.PasswordHash)

	_, err = r.GetCredentials(ctx, "nobody")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_OrderedByUsername(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	for _, name := range []string{"pedro", "ana", "Zoe", "luis"} {
		in := ana
		in.Username = name
		_, err := r.Create(ctx, in, "h")
		require.NoError(t, err)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)

	var names []string
	for _, u := range list {
		names = append(names, u.Username)
	}
	// binary collation: uppercase sorts first
	assert.Equal(t, []string{"Zoe", "ana", "luis", "pedro"}, names)
}

func TestUpdate(t *testing.T) {
	r, db := newRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, ana, "hash-1")
	require.NoError(t, err)

	changed := models.UserInput{Username: "ana.ruiz", DisplayName: "Ana R.", Email: "", Role: models.RoleAdmin}
	n, err := r.Update(ctx, u.ID, changed)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana.ruiz", got.Username)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)

	var hash string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM users WHERE id = ?`, u.ID).Scan(&hash))
	assert.Equal(t, "hash-1", hash, "plain update keeps the password")

	n, err = r.UpdateWithPassword(ctx, u.ID, changed, "hash-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM users WHERE id = ?`, u.ID).Scan(&hash))
	assert.Equal(t, "hash-2", hash)
}

func TestUpdate_UnknownIDMatchesNothing(t *testing.T) {
	r, _ := newRepo(t)
	n, err := r.Update(context.Background(), 42, ana)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdate_RenameToExisting(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, ana, "h")
	require.NoError(t, err)
	luis := ana
	luis.Username = "luis"
	u, err := r.Create(ctx, luis, "h")
	require.NoError(t, err)

	_, err = r.Update(ctx, u.ID, ana)
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "luis", got.Username)
}

func TestDelete_And_Count(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, ana, "h")
	require.NoError(t, err)

	n, err := r.CountByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, r.Delete(ctx, u.ID))

	n, err = r.CountByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestDBErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	t.Run("create", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(boom)
		_, err := r.Create(ctx, ana, "h")
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, common.ErrDuplicateUsername)
	})

	t.Run("get", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \?`).WillReturnError(boom)
		_, err := r.GetByID(ctx, 1)
		require.ErrorIs(t, err, boom)
	})

	t.Run("list", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectQuery(`SELECT .* FROM users ORDER BY username`).WillReturnError(boom)
		_, err := r.List(ctx)
		require.ErrorIs(t, err, boom)
	})

	t.Run("delete", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(7)).WillReturnError(boom)
		err := r.Delete(ctx, 7)
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
