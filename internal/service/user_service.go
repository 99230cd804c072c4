package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/config"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/repository"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// UserService owns the user directory and session issuing.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	cfg    config.AuthConfig
	logger *zap.Logger
}

// UserDependencies bundles repositories.
type UserDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Auth     config.AuthConfig
	Logger   *zap.Logger
}

// NewUserService creates the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:  deps.UserRepo,
		tokens: deps.Tokens,
		cfg:    deps.Auth,
		logger: deps.Logger,
	}
}

// RegisterInput carries a new directory entry.
type RegisterInput struct {
	Name           string
	Surname        string
	Email          string
	Phone          string
	Password       string
	Role           domain.Role
	PositionID     *string
	MunicipalityID *string
}

// Register creates a user with a hashed password. Engineers must carry
// a municipality or assignment can never pick them.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(input.Role)})
	}
	if input.Role == domain.RoleEngineer && input.MunicipalityID == nil {
		return nil, apperrors.NewValidationError("engineers require a municipality", nil)
	}

	if existing, err := s.users.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:           input.Name,
		Surname:        input.Surname,
		Email:          input.Email,
		Phone:          input.Phone,
		Role:           input.Role,
		PositionID:     input.PositionID,
		MunicipalityID: input.MunicipalityID,
		Active:         true,
		PasswordHash:   hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Session is a freshly issued login session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login verifies credentials and issues a signed session token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetUser fetches one directory entry.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns the whole directory.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateUser applies the partial update and returns the fresh entry.
// Non-admin callers may only touch their own entry, and only its
// profile fields; role and municipality changes stay with admins.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Identity, id string, update repository.UserUpdate) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		if actor.UserID != id {
			return nil, apperrors.NewForbidden("cannot update another user")
		}
		if update.Role != nil || update.MunicipalityID != nil {
			return nil, apperrors.NewForbidden("role and municipality changes require an administrator")
		}
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(*update.Role)})
	}
	if update.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &normalized
	}
	if err := s.users.UpdateByID(ctx, id, update); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return s.GetUser(ctx, id)
}

// SetActive toggles the account flag. Inactive engineers drop out of
// the assignment pool but keep their existing tickets.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// DeleteUser removes the entry. Tickets assigned to the user keep their
// engineer reference and show up unassigned in listings.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
