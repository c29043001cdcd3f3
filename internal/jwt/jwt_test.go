package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndGetClaims(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Name)
}

func TestJWT_DefaultExpirationIs24Hours(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	assert.Equal(t, 24*time.Hour, j.Expiration())

	token, err := j.Generate(context.Background(), uuid.New(), "alice")
	assert.NoError(t, err)

	claims, err := j.GetClaims(context.Background(), token)
	assert.NoError(t, err)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, ttl, 23*time.Hour+59*time.Minute)
	assert.LessOrEqual(t, ttl, 24*time.Hour)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute)) // already expired

	ctx := context.Background()
	token, err := j.Generate(ctx, uuid.New(), "alice")
	assert.NoError(t, err)

	err = j.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	claims, err := j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWT_MalformedToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	err := j.Validate(ctx, "invalid.token.string")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	claims, err := j.GetClaims(ctx, "invalid.token.string")
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.Nil(t, claims)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := New(WithSecretKey("secret-a"))
	verifier := New(WithSecretKey("secret-b"))

	ctx := context.Background()
	token, err := issuer.Generate(ctx, uuid.New(), "alice")
	assert.NoError(t, err)

	err = verifier.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New()
	ctx := context.Background()

	tests := []struct {
		name          string
		cookie        string
		header        string
		expectedToken string
		expectedErr   error
	}{
		{"CookieOnly", "cookietoken", "", "cookietoken", nil},
		{"HeaderOnly", "", "Bearer headertoken", "headertoken", nil},
		{"LowercaseBearer", "", "bearer headertoken", "headertoken", nil},
		{"CookieTakesPrecedence", "cookietoken", "Bearer headertoken", "cookietoken", nil},
		{"Neither", "", "", "", ErrTokenMissing},
		{"BadHeaderScheme", "", "Token abc", "", ErrTokenMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, r)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
