package repository

import (
	"context"
	"errors"
	"fmt"

	"starter_backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindAll(ctx context.Context, filters model.UserFilters) ([]model.User, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `u.id, u.email, u.phone, u.first_name, u.last_name, u.password_hash, u.role_id, r.name, u.created_at`

func scanUser(row pgx.Row, user *model.User) error {
	return row.Scan(&user.ID, &user.Email, &user.Phone, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.RoleID, &user.RoleName, &user.CreatedAt)
}

// Create inserts a new user into the database. A duplicate email or phone
// surfaces as ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, phone, first_name, last_name, password_hash, role_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Email, user.Phone, user.FirstName, user.LastName,
		user.PasswordHash, user.RoleID, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email, or nil if no such user exists
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = $1`
	err := scanUser(r.db.QueryRow(ctx, sql, email), user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error here, the service layer decides
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by ID, or nil if no such user exists
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`
	err := scanUser(r.db.QueryRow(ctx, sql, id), user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindAll retrieves all users matching the given filters
func (r *userRepository) FindAll(ctx context.Context, filters model.UserFilters) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id`
	args := []any{}
	if filters.RoleName != nil {
		sql += ` WHERE r.name = $1`
		args = append(args, *filters.RoleName)
	}
	sql += ` ORDER BY u.id`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}
	return users, nil
}

// CountAll returns the total number of registered users
func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
