package repository

import (
	"context"
	"testing"
	"time"

	"starter_backend/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoleRepoWithMock(t *testing.T) (RoleRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRoleRepository(mock), mock
}

func TestRoleRepository_Create(t *testing.T) {
	repo, mock := newRoleRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO roles`).
		WithArgs("moderator").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	role := &model.Role{Name: "moderator"}
	err := repo.Create(context.Background(), role)

	assert.NoError(t, err)
	assert.Equal(t, 3, role.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newRoleRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO roles`).
		WithArgs("admin").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.Role{Name: "admin"})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_FindByName(t *testing.T) {
	repo, mock := newRoleRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, created_at FROM roles`).
		WithArgs("user").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow(1, "user", now))

	role, err := repo.FindByName(context.Background(), "user")

	assert.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, 1, role.ID)
	assert.Equal(t, "user", role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_FindByName_NotFound(t *testing.T) {
	repo, mock := newRoleRepoWithMock(t)

	mock.ExpectQuery(`SELECT id, name, created_at FROM roles`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	role, err := repo.FindByName(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_FindAll(t *testing.T) {
	repo, mock := newRoleRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, created_at FROM roles`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(1, "user", now).
			AddRow(2, "admin", now))

	roles, err := repo.FindAll(context.Background())

	assert.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "user", roles[0].Name)
	assert.Equal(t, "admin", roles[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
