package auth_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propman/internal/auth"
	"propman/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := auth.NewTokens("test-secret")

	user := &models.User{Email: "admin@propman.local", IsAdmin: true}
	user.ID = 42

	signed, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@propman.local", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "propman", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	user := &models.User{Email: "admin@propman.local"}
	user.ID = 1

	signed, err := auth.NewTokens("secret-a").Issue(user)
	require.NoError(t, err)

	_, err = auth.NewTokens("secret-b").Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	claims := auth.Claims{UserID: 1, Email: "admin@propman.local", IsAdmin: true}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokens("test-secret").Verify(unsigned)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := auth.NewTokens("test-secret").Verify("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, auth.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, auth.CheckPasswordHash("wrong password", hash))
}
