package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/cryptox"
	"github.com/dmitrijs2005/labkeeper/internal/logging"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/labkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "lab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newUserService(t *testing.T, db *sql.DB) *UserService {
	t.Helper()
	h := cryptox.NewHasher(cryptox.Params{Time: 1, Memory: 1024, Threads: 1})
	return NewUserService(db, repomanager.NewSQLiteRepositoryManager(), h, logging.Discard())
}

func initialized(t *testing.T) (*UserService, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	s := newUserService(t, db)
	require.NoError(t, s.Initialize(context.Background()))
	return s, db
}

func adminHash(t *testing.T, db *sql.DB) string {
	t.Helper()
	var h string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM users WHERE username = 'admin'`).Scan(&h))
	return h
}

func memberInput(username string) models.UserInput {
	return models.UserInput{Username: username, DisplayName: "Ana Ruiz", Role: models.RoleUser}
}

// --- Initialize ---

func TestInitialize_SeedsAdminOnce(t *testing.T) {
	s, db := initialized(t)
	ctx := context.Background()
	first := adminHash(t, db)

	for range 3 {
		require.NoError(t, s.Initialize(ctx))
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&n))
	assert.Equal(t, 1, n)
	assert.Equal(t, first, adminHash(t, db), "bootstrap must not rehash an existing admin")

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Administrador", list[0].DisplayName)
	assert.Equal(t, "admin@laboratorio.com", list[0].Email)
	assert.Equal(t, models.RoleAdmin, list[0].Role)
}

func TestInitialize_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	s := newUserService(t, db)
	err = s.Initialize(context.Background())
	require.ErrorIs(t, err, common.ErrorStore)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- Authenticate ---

func TestAuthenticate_DefaultAdmin(t *testing.T) {
	s, _ := initialized(t)

	u, err := s.Authenticate(context.Background(), "admin", []byte("admin123"))
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, u.IsAdmin())
}

func TestAuthenticate_SameFailureForUnknownUserAndWrongPassword(t *testing.T) {
	s, _ := initialized(t)
	ctx := context.Background()

	_, errWrong := s.Authenticate(ctx, "admin", []byte("nope"))
	_, errUnknown := s.Authenticate(ctx, "ghost", []byte("admin123"))

	require.ErrorIs(t, errWrong, common.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.Equal(t, errWrong, errUnknown)
}

func TestAuthenticate_UnreadableHash(t *testing.T) {
	s, db := initialized(t)
	_, err := db.Exec(`UPDATE users SET password_hash = 'plain' WHERE username = 'admin'`)
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), "admin", []byte("plain"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthenticate_UnusableHashParameters(t *testing.T) {
	s, db := initialized(t)
	ctx := context.Background()

	for _, stored := range []string{
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
	} {
		_, err := db.Exec(`UPDATE users SET password_hash = ? WHERE username = 'admin'`, stored)
		require.NoError(t, err)

		require.NotPanics(t, func() {
			_, err = s.Authenticate(ctx, "admin", []byte("x"))
		}, stored)
		require.ErrorIs(t, err, common.ErrInvalidCredentials, stored)
	}
}

func TestAuthenticate_StoreFailureIsNotALoginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("FROM users WHERE username").WillReturnError(errors.New("database is locked"))

	_, err = newUserService(t, db).Authenticate(context.Background(), "admin", []byte("admin123"))
	require.ErrorIs(t, err, common.ErrorStore)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

// --- Create / Update ---

func TestCreate_DuplicateUsername(t *testing.T) {
	s, _ := initialized(t)
	ctx := context.Background()

	created, err := s.Create(ctx, memberInput("ana"), []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)

	_, err = s.Create(ctx, memberInput("ana"), []byte("other"))
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	ok, msg := common.Outcome(err, common.MsgUserCreated, common.MsgAddUserFailed)
	assert.False(t, ok)
	assert.Equal(t, "El nombre de usuario ya existe", msg)
}

func TestUpdate_PasswordOnlyChangesWhenAsked(t *testing.T) {
	s, _ := initialized(t)
	ctx := context.Background()

	u, err := s.Create(ctx, memberInput("ana"), []byte("old"))
	require.NoError(t, err)

	in := memberInput("ana")
	in.DisplayName = "Ana R."
	in.Email = "ana@lab.cl"
	require.NoError(t, s.Update(ctx, u.ID, in, false, []byte("ignored")))

	_, err = s.Authenticate(ctx, "ana", []byte("old"))
	require.NoError(t, err)

	got, err := s.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana R.", got.DisplayName)
	assert.Equal(t, "ana@lab.cl", got.Email)

	require.NoError(t, s.Update(ctx, u.ID, in, true, []byte("new")))
	_, err = s.Authenticate(ctx, "ana", []byte("old"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "ana", []byte("new"))
	require.NoError(t, err)
}

func TestUpdate_UsernameCollision(t *testing.T) {
	s, _ := initialized(t)
	ctx := context.Background()

	u, err := s.Create(ctx, memberInput("ana"), []byte("pw"))
	require.NoError(t, err)

	err = s.Update(ctx, u.ID, memberInput("admin"), false, nil)
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	got, err := s.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	// keeping its own username is not a collision
	require.NoError(t, s.Update(ctx, u.ID, memberInput("ana"), false, nil))
}

func TestUpdate_StaleID(t *testing.T) {
	s, _ := initialized(t)
	err := s.Update(context.Background(), 999, memberInput("ana"), false, nil)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_AdminKeepsUsernameAndRole(t *testing.T) {
	s, db := initialized(t)
	ctx := context.Background()

	admin, err := s.Authenticate(ctx, "admin", []byte("admin123"))
	require.NoError(t, err)

	renamed := models.UserInput{Username: "root", DisplayName: "Administrador", Role: models.RoleAdmin}
	err = s.Update(ctx, admin.ID, renamed, false, nil)
	require.ErrorIs(t, err, common.ErrProtectedIdentity)
	require.ErrorIs(t, err, common.ErrProtectedAccount)

	demoted := models.UserInput{Username: "admin", DisplayName: "Administrador", Role: models.RoleUser}
	require.ErrorIs(t, s.Update(ctx, admin.ID, demoted, false, nil), common.ErrProtectedIdentity)

	// neither attempt left a deletable row behind
	require.ErrorIs(t, s.Delete(ctx, admin.ID), common.ErrProtectedAccount)
	require.NoError(t, s.Initialize(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE id = ? AND username = 'admin' AND role = 'admin'`, admin.ID).Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)

	ok, msg := common.Outcome(err, common.MsgUserUpdated, common.MsgUpdateUserFailed)
	assert.False(t, ok)
	assert.Equal(t, common.MsgProtectedIdentity, msg)
}

func TestUpdate_AdminProfileAndPasswordStillEditable(t *testing.T) {
	s, _ := initialized(t)
	ctx := context.Background()

	admin, err := s.Authenticate(ctx, "admin", []byte("admin123"))
	require.NoError(t, err)

	in := models.UserInput{Username: "admin", DisplayName: "Jefa de Laboratorio", Email: "lab@uni.cl", Role: models.RoleAdmin}
	require.NoError(t, s.Update(ctx, admin.ID, in, true, []byte("nueva")))

	got, err := s.Authenticate(ctx, "admin", []byte("nueva"))
	require.NoError(t, err)
	assert.Equal(t, "Jefa de Laboratorio", got.DisplayName)
	assert.Equal(t, "lab@uni.cl", got.Email)
}

func TestUpdate_StoreFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM users WHERE id").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = newUserService(t, db).Update(context.Background(), 3, memberInput("ana"), false, nil)
	require.ErrorIs(t, err, common.ErrorStore)
	require.NoError(t, mock.ExpectationsWereMet())
}

// --- Delete ---

func TestDelete_ProtectsAdmin(t *testing.T) {
	s, db := initialized(t)
	ctx := context.Background()

	admin, err := s.Authenticate(ctx, "admin", []byte("admin123"))
	require.NoError(t, err)

	err = s.Delete(ctx, admin.ID)
	require.ErrorIs(t, err, common.ErrProtectedAccount)
	assert.NotEmpty(t, adminHash(t, db))

	ok, msg := common.Outcome(err, common.MsgUserDeleted, common.MsgDeleteUserFailed)
	assert.False(t, ok)
	assert.Equal(t, "No se puede eliminar al usuario administrador principal", msg)
}

func TestDelete_RemovesExactlyTarget(t *testing.T) {
	s, _ := initialized(t)
	ctx := context.Background()

	ana, err := s.Create(ctx, memberInput("ana"), []byte("pw"))
	require.NoError(t, err)
	_, err = s.Create(ctx, memberInput("luis"), []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, ana.ID))

	list, err := s.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, u := range list {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"admin", "luis"}, names)

	require.ErrorIs(t, s.Delete(ctx, ana.ID), common.ErrorNotFound)
}

func TestList_StoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	boom := errors.New("boom")
	mock.ExpectQuery("FROM users ORDER BY username").WillReturnError(boom)

	_, err = newUserService(t, db).List(context.Background())
	require.ErrorIs(t, err, common.ErrorStore)
	require.ErrorIs(t, err, boom)
}
