package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	access, refresh, expiresIn, err := svc.Generate(42, "frontdesk")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.Equal(t, int64(15*60), expiresIn)

	claims, err := svc.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.OperatorID)
	assert.Equal(t, "frontdesk", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := svc.Verify(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestJWTService_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15, 7)
	verifier := NewJWTService("secret-b", 15, 7)

	access, _, _, err := issuer.Generate(1, "frontdesk")
	require.NoError(t, err)

	_, err = verifier.Verify(access)
	assert.Error(t, err)
}

func TestJWTService_VerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_Refresh(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	_, refresh, _, err := svc.Generate(42, "frontdesk")
	require.NoError(t, err)

	access, newRefresh, expiresIn, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, int64(15*60), expiresIn)

	claims, err := svc.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_RefreshRejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	access, _, _, err := svc.Generate(42, "frontdesk")
	require.NoError(t, err)

	_, _, _, err = svc.Refresh(access)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NoError(t, hasher.Verify("correct horse battery staple", hash))
	assert.Error(t, hasher.Verify("wrong password", hash))
	assert.Error(t, hasher.Verify("correct horse battery staple", "not-a-hash"))
}
