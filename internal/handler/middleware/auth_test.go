//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"seatly/internal/handler/middleware"
	"seatly/internal/usecase"
	"seatly/tests/common/httptest"
	usecasemock "seatly/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(t *testing.T, validator usecase.TokenValidator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := middleware.NewAuthMiddleware(validator)

	whoami := func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		userID, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": userID, "email": p.Email})
	}
	router.GET("/required", auth.RequireAuth(), whoami)
	router.GET("/optional", auth.OptionalAuth(), whoami)
	return router
}

type whoamiBody struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setup      func(v *usecasemock.MockTokenValidator)
		expectCode int
		expectMsg  string
	}{
		{
			name:  "valid token",
			token: "good",
			setup: func(v *usecasemock.MockTokenValidator) {
				v.EXPECT().ValidateToken("good").Return(usecase.Principal{UserID: "user-1", Email: "a@b.c"}, nil)
			},
			expectCode: http.StatusOK,
		},
		{
			name:       "missing token",
			setup:      func(*usecasemock.MockTokenValidator) {},
			expectCode: http.StatusUnauthorized,
			expectMsg:  "Access token required",
		},
		{
			name:  "expired token",
			token: "old",
			setup: func(v *usecasemock.MockTokenValidator) {
				v.EXPECT().ValidateToken("old").Return(usecase.Principal{}, assert.AnError)
			},
			expectCode: http.StatusUnauthorized,
			expectMsg:  "Invalid or expired token",
		},
		{
			name:  "token without subject",
			token: "anon",
			setup: func(v *usecasemock.MockTokenValidator) {
				v.EXPECT().ValidateToken("anon").Return(usecase.Principal{}, nil)
			},
			expectCode: http.StatusUnauthorized,
			expectMsg:  "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			validator := usecasemock.NewMockTokenValidator(ctrl)
			tt.setup(validator)

			rec := httptest.PerformRequest(t, newAuthRouter(t, validator), http.MethodGet, "/required", nil, tt.token)

			if tt.expectCode != http.StatusOK {
				httptest.AssertErrorResponse(t, rec, tt.expectCode, tt.expectMsg)
				return
			}
			var body whoamiBody
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
			assert.Equal(t, whoamiBody{Authenticated: true, UserID: "user-1", Email: "a@b.c"}, body)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous request passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := httptest.PerformRequest(t, newAuthRouter(t, usecasemock.NewMockTokenValidator(ctrl)), http.MethodGet, "/optional", nil, "")

		var body whoamiBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.False(t, body.Authenticated)
	})

	t.Run("invalid token passes unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := usecasemock.NewMockTokenValidator(ctrl)
		validator.EXPECT().ValidateToken("bad").Return(usecase.Principal{}, assert.AnError)

		rec := httptest.PerformRequest(t, newAuthRouter(t, validator), http.MethodGet, "/optional", nil, "bad")

		var body whoamiBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.False(t, body.Authenticated)
	})

	t.Run("valid token sets the principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := usecasemock.NewMockTokenValidator(ctrl)
		validator.EXPECT().ValidateToken("good").Return(usecase.Principal{UserID: "user-1"}, nil)

		rec := httptest.PerformRequest(t, newAuthRouter(t, validator), http.MethodGet, "/optional", nil, "good")

		var body whoamiBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "user-1", body.UserID)
	})
}
