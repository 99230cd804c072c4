package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/config"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/repository"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

func newTestUserService(users *stubUserRepo) *UserService {
	return NewUserService(UserDependencies{
		UserRepo: users,
		Tokens:   auth.NewTokenManager("test-secret", 60),
		Auth:     config.AuthConfig{BcryptCost: 4},
		Logger:   zap.NewNop(),
	})
}

func TestRegisterEngineerRequiresMunicipality(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Laura",
		Email:    "laura@example.com",
		Password: "secret",
		Role:     domain.RoleEngineer,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u-1", Email: "laura@example.com"})
	svc := newTestUserService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Laura",
		Email:    "Laura@Example.com",
		Password: "secret",
		Role:     domain.RoleHealthStaff,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Laura",
		Email:    "laura@example.com",
		Password: "secret",
		Role:     domain.RoleHealthStaff,
	})
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "secret", user.PasswordHash)
	require.NoError(t, auth.ComparePassword(user.PasswordHash, "secret"))
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUserRepo()
	hash, err := auth.HashPassword("correct", 4)
	require.NoError(t, err)
	users.add(&domain.User{ID: "u-1", Email: "laura@example.com", Active: true, PasswordHash: hash, Role: domain.RoleAdmin})
	svc := newTestUserService(users)

	_, err = svc.Login(context.Background(), "laura@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	users := newStubUserRepo()
	hash, err := auth.HashPassword("correct", 4)
	require.NoError(t, err)
	users.add(&domain.User{ID: "u-1", Email: "laura@example.com", Active: false, PasswordHash: hash, Role: domain.RoleAdmin})
	svc := newTestUserService(users)

	_, err = svc.Login(context.Background(), "laura@example.com", "correct")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestUpdateUserSelfProfile(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u-1", Email: "laura@example.com", Role: domain.RoleHealthStaff})
	svc := newTestUserService(users)

	phone := "3005551234"
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleHealthStaff}
	_, err := svc.UpdateUser(context.Background(), actor, "u-1", repository.UserUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, 1, users.updateCalls)
}

func TestUpdateUserCannotTouchOthers(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u-2", Email: "pedro@example.com", Role: domain.RoleHealthStaff})
	svc := newTestUserService(users)

	phone := "3005551234"
	actor := domain.Identity{UserID: "u-1", Role: domain.RoleHealthStaff}
	_, err := svc.UpdateUser(context.Background(), actor, "u-2", repository.UserUpdate{Phone: &phone})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Zero(t, users.updateCalls)
}

func TestUpdateUserSelfCannotEscalate(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u-1", Email: "laura@example.com", Role: domain.RoleHealthStaff})
	svc := newTestUserService(users)

	actor := domain.Identity{UserID: "u-1", Role: domain.RoleHealthStaff}
	role := domain.RoleAdmin
	_, err := svc.UpdateUser(context.Background(), actor, "u-1", repository.UserUpdate{Role: &role})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	muni := "muni-2"
	_, err = svc.UpdateUser(context.Background(), actor, "u-1", repository.UserUpdate{MunicipalityID: &muni})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Zero(t, users.updateCalls)
}

func TestUpdateUserAdminChangesAnyEntry(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u-2", Email: "pedro@example.com", Role: domain.RoleHealthStaff})
	svc := newTestUserService(users)

	role := domain.RoleEngineer
	muni := "muni-1"
	actor := domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	_, err := svc.UpdateUser(context.Background(), actor, "u-2", repository.UserUpdate{Role: &role, MunicipalityID: &muni})
	require.NoError(t, err)
	assert.Equal(t, 1, users.updateCalls)
}

func TestLoginIssuesSession(t *testing.T) {
	users := newStubUserRepo()
	hash, err := auth.HashPassword("correct", 4)
	require.NoError(t, err)
	users.add(&domain.User{ID: "u-1", Email: "laura@example.com", Active: true, PasswordHash: hash, Role: domain.RoleAdmin, Name: "Laura"})
	svc := newTestUserService(users)

	session, err := svc.Login(context.Background(), "LAURA@example.com", "correct")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "u-1", session.User.ID)

	claims, err := auth.NewTokenManager("test-secret", 60).ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}
