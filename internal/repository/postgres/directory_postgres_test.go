package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDirectoryPostgres_UserByID(t *testing.T) {
	db, mock := newMockDB(t)
	dir := NewDirectoryPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, first_name, last_name FROM users WHERE id = \\$1").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name"}).
				AddRow("user-1", "dana.v", "Dana", "V"))

		u, err := dir.UserByID(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "dana.v", u.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, first_name, last_name FROM users WHERE id = \\$1").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		u, err := dir.UserByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, u)
	})
}

func TestDirectoryPostgres_CEOOf(t *testing.T) {
	db, mock := newMockDB(t)
	dir := NewDirectoryPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT u.id, u.username, u.first_name, u.last_name").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name"}).
			AddRow("ceo-1", "pat.k", "Pat", "K"))

	u, err := dir.CEOOf(ctx, "c1")

	assert.NoError(t, err)
	assert.Equal(t, "ceo-1", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectoryPostgres_RoleOf(t *testing.T) {
	db, mock := newMockDB(t)
	dir := NewDirectoryPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id, company_id, is_success_manager FROM user_roles WHERE user_id = \\$1").
		WithArgs("sm-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "company_id", "is_success_manager"}).
			AddRow("sm-1", "c1", true))

	r, err := dir.RoleOf(ctx, "sm-1")

	assert.NoError(t, err)
	assert.Equal(t, "c1", r.CompanyID)
	assert.True(t, r.IsSuccessManager)
}

func TestDirectoryPostgres_UsersOfCompany(t *testing.T) {
	db, mock := newMockDB(t)
	dir := NewDirectoryPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id FROM user_roles WHERE company_id = \\$1").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("ceo-1").AddRow("dev-1"))

	ids, err := dir.UsersOfCompany(ctx, "c1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"ceo-1", "dev-1"}, ids)
}

func TestDirectoryPostgres_SameCompany(t *testing.T) {
	db, mock := newMockDB(t)
	dir := NewDirectoryPostgres(db)
	ctx := context.Background()

	t.Run("same company", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(DISTINCT user_id\\), COUNT\\(DISTINCT company_id\\)").
			WithArgs([]string{"a", "b"}).
			WillReturnRows(sqlmock.NewRows([]string{"users", "companies"}).AddRow(2, 1))

		same, err := dir.SameCompany(ctx, []string{"a", "b"})

		assert.NoError(t, err)
		assert.True(t, same)
	})

	t.Run("different companies", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(DISTINCT user_id\\), COUNT\\(DISTINCT company_id\\)").
			WithArgs([]string{"a", "b"}).
			WillReturnRows(sqlmock.NewRows([]string{"users", "companies"}).AddRow(2, 2))

		same, err := dir.SameCompany(ctx, []string{"a", "b"})

		assert.NoError(t, err)
		assert.False(t, same)
	})

	t.Run("duplicate users count once", func(t *testing.T) {
		// Transferring a document to its current owner passes the actor
		// twice; that must not trip the membership count.
		mock.ExpectQuery("SELECT COUNT\\(DISTINCT user_id\\), COUNT\\(DISTINCT company_id\\)").
			WithArgs([]string{"a"}).
			WillReturnRows(sqlmock.NewRows([]string{"users", "companies"}).AddRow(1, 1))

		same, err := dir.SameCompany(ctx, []string{"a", "a"})

		assert.NoError(t, err)
		assert.True(t, same)
	})

	t.Run("user without a role row", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(DISTINCT user_id\\), COUNT\\(DISTINCT company_id\\)").
			WithArgs([]string{"a", "ghost"}).
			WillReturnRows(sqlmock.NewRows([]string{"users", "companies"}).AddRow(1, 1))

		same, err := dir.SameCompany(ctx, []string{"a", "ghost"})

		assert.NoError(t, err)
		assert.False(t, same)
	})
}
