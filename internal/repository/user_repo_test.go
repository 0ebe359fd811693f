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

var userRows = []string{"id", "email", "phone", "first_name", "last_name", "password_hash", "role_id", "name", "created_at"}

func newUserRepoWithMock(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	user := &model.User{
		Email:        "a@x.com",
		Phone:        "+1234567890",
		FirstName:    "Anna",
		LastName:     "Smith",
		PasswordHash: "hashed",
		RoleID:       1,
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Email, user.Phone, user.FirstName, user.LastName, user.PasswordHash, user.RoleID, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	// A concurrent insert with the same email lands here even after a clean
	// pre-check; the constraint violation must surface as ErrDuplicate.
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.User{Email: "a@x.com"})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users u JOIN roles r`).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows(userRows).
			AddRow(1, "a@x.com", "+1234567890", "Anna", "Smith", "hashed", 1, "user", now))

	user, err := repo.FindByEmail(context.Background(), "a@x.com")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "user", user.RoleName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users u JOIN roles r`).
		WithArgs("missing@x.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "missing@x.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users u JOIN roles r`).
		WithArgs(99).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAll(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users u JOIN roles r`).
		WillReturnRows(pgxmock.NewRows(userRows).
			AddRow(1, "a@x.com", "+1234567890", "Anna", "Smith", "hashed", 1, "user", now).
			AddRow(2, "b@x.com", "+1234567891", "Boris", "Jones", "hashed", 2, "admin", now))

	users, err := repo.FindAll(context.Background(), model.UserFilters{})

	assert.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[1].RoleName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAll_RoleFilter(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()
	role := "admin"

	mock.ExpectQuery(`SELECT (.+) FROM users u JOIN roles r (.+) WHERE r.name`).
		WithArgs(role).
		WillReturnRows(pgxmock.NewRows(userRows).
			AddRow(2, "b@x.com", "+1234567891", "Boris", "Jones", "hashed", 2, "admin", now))

	users, err := repo.FindAll(context.Background(), model.UserFilters{RoleName: &role})

	assert.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b@x.com", users[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountAll(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))

	count, err := repo.CountAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
