package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "24h")
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	teamID := "team-1"

	tokenString, expiresAt, err := svc.GenerateAccessToken("u1", "jdoe", user.RoleManager, &teamID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "u1", userID)
	username, _ := token.Get("username")
	assert.Equal(t, "jdoe", username)
	role, _ := token.Get("role")
	assert.Equal(t, "manager", role)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
	claimTeam, _ := token.Get("team_id")
	assert.Equal(t, "team-1", claimTeam)
}

func TestGenerateAccessToken_NoTeamClaim(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("u1", "jdoe", user.RoleEmployee, nil)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	_, ok := token.Get("team_id")
	assert.False(t, ok)
}

func TestGenerateRefreshToken_TypeClaim(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	tokenType, _ := token.Get("type")
	assert.Equal(t, "refresh", tokenType)
}

func TestGenerate_InvalidExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "not-a-duration", "also-bad")

	_, _, err := svc.GenerateAccessToken("u1", "jdoe", user.RoleEmployee, nil)
	assert.Error(t, err)

	_, _, err = svc.GenerateRefreshToken("u1")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))
	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	cookie := svc.RefreshTokenCookie("tok", 1735689600)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
}
