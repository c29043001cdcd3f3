package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/jwt"
	"github.com/devfolio/devfolio-api/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		mockSetup    func(m *MockTokener)
		expectedCode int
		expectedMsg  string
		wantIdentity bool
	}{
		{
			name: "valid token attaches identity",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("good", nil)
				m.EXPECT().GetClaims(gomock.Any(), "good").
					Return(&jwt.Claims{UserID: userID, Name: "jane"}, nil)
			},
			expectedCode: http.StatusOK,
			wantIdentity: true,
		},
		{
			name: "missing token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", jwt.ErrTokenMissing)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Authentication required. Please login",
		},
		{
			name: "expired token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("stale", nil)
				m.EXPECT().GetClaims(gomock.Any(), "stale").Return(nil, jwt.ErrTokenExpired)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Token expired. Please login again",
		},
		{
			name: "malformed token",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("garbage", nil)
				m.EXPECT().GetClaims(gomock.Any(), "garbage").Return(nil, jwt.ErrTokenMalformed)
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Invalid token. Please login again",
		},
		{
			name: "any other verification failure",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("odd", nil)
				m.EXPECT().GetClaims(gomock.Any(), "odd").Return(nil, errors.New("boom"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Authentication Failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			tt.mockSetup(mockTokener)

			var gotIdentity models.Identity
			var identityOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, identityOK = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, zap.NewNop().Sugar())(next)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/topics", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.wantIdentity {
				assert.True(t, identityOK)
				assert.Equal(t, userID, gotIdentity.UserID)
				assert.Equal(t, "jane", gotIdentity.Name)
			} else {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMsg, resp["message"])
			}
		})
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
