package repository

import (
	"context"
	"errors"
	"fmt"

	"starter_backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// RoleRepository defines operations for role data
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindByID(ctx context.Context, id int) (*model.Role, error)
	FindAll(ctx context.Context) ([]model.Role, error)
}

type roleRepository struct {
	db DBTX
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db DBTX) RoleRepository {
	return &roleRepository{db: db}
}

// Create inserts a new role. A duplicate name surfaces as ErrDuplicate.
func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	sql := `INSERT INTO roles (name) VALUES ($1) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, role.Name).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// FindByName retrieves a role by name, or nil if no such role exists
func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	role := &model.Role{}
	sql := `SELECT id, name, created_at FROM roles WHERE name = $1`
	err := r.db.QueryRow(ctx, sql, name).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find role by name: %w", err)
	}
	return role, nil
}

// FindByID retrieves a role by ID, or nil if no such role exists
func (r *roleRepository) FindByID(ctx context.Context, id int) (*model.Role, error) {
	role := &model.Role{}
	sql := `SELECT id, name, created_at FROM roles WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find role by ID: %w", err)
	}
	return role, nil
}

// FindAll retrieves all roles
func (r *roleRepository) FindAll(ctx context.Context) ([]model.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []model.Role{}
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read role rows: %w", err)
	}
	return roles, nil
}
