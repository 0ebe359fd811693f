package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"starter_backend/internal/model"
	"starter_backend/internal/repository"
	"starter_backend/internal/utils"
)

var (
	ErrUserAlreadyExists = errors.New("user with this email or phone already exists")
	ErrRoleAlreadyExists = errors.New("role with this name already exists")
	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// TokenPair is a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	AllUsers(ctx context.Context, filters model.UserFilters) ([]model.User, error)
	AddRole(ctx context.Context, name string) (*model.Role, error)
}

type authService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account with the default 'user' role.
// Registration does not log the user in; no tokens are issued here.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	defaultRole, err := s.roleRepo.FindByName(ctx, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default role: %w", err)
	}
	if defaultRole == nil {
		return nil, fmt.Errorf("default role %q is not seeded", model.RoleUser)
	}

	user := &model.User{
		Email:        req.Email,
		Phone:        req.Phone,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		RoleID:       defaultRole.ID,
		RoleName:     defaultRole.Name,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The existence check above is not atomic with the insert; a
		// concurrent registration lands here via the uniqueness constraint.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues a fresh token pair
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh validates a refresh token and issues a brand-new token pair for
// the same user. The old refresh token is not invalidated server-side; it
// stays independently valid until its own expiry.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtUtil.ValidateToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	if user == nil {
		// The token outlived the account; treat it like any other bad token
		return nil, ErrInvalidToken
	}

	return s.issueTokenPair(user.ID)
}

// AllUsers lists all registered users
func (s *authService) AllUsers(ctx context.Context, filters model.UserFilters) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AddRole creates a new role with the given name
func (s *authService) AddRole(ctx context.Context, name string) (*model.Role, error) {
	existing, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing role: %w", err)
	}
	if existing != nil {
		return nil, ErrRoleAlreadyExists
	}

	role := &model.Role{Name: name}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleAlreadyExists
		}
		return nil, fmt.Errorf("failed to create role in repository: %w", err)
	}
	return role, nil
}

func (s *authService) issueTokenPair(userID int) (*TokenPair, error) {
	accessToken, refreshToken, err := s.jwtUtil.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
