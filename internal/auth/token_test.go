package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	municipality := "m5"
	user := &domain.User{
		ID:             "u1",
		Name:           "Laura",
		Surname:        "Gomez",
		Email:          "laura@example.com",
		Role:           domain.RoleEngineer,
		MunicipalityID: &municipality,
		Municipality:   "Pitalito",
	}

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	require.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleEngineer, claims.Role)
	require.NotNil(t, claims.MunicipalityID)
	assert.Equal(t, "m5", *claims.MunicipalityID)

	identity := claims.Identity()
	assert.Equal(t, "Laura Gomez", identity.Name)
	assert.Equal(t, "Pitalito", identity.Municipality)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	token, _, err := tm.GenerateToken(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	other := NewTokenManager("secret-b", 60)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "s3cret!"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
