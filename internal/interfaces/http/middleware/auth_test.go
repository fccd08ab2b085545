package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/infrastructure/auth"
	"lineup/internal/shared/logger"
)

func newProtectedEngine(t *testing.T, svc *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	mw := NewAuthMiddleware(svc, logger.NewLogger())
	engine.GET("/protected", mw.RequireOperator(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"operator_id": c.GetUint(ContextKeyOperatorID),
		})
	})
	return engine
}

func TestRequireOperator_ValidAccessToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 15, 7)
	access, _, _, err := svc.Generate(42, "gatekeeper")
	require.NoError(t, err)

	engine := newProtectedEngine(t, svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"operator_id":42`)
}

func TestRequireOperator_Rejections(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 15, 7)
	_, refresh, _, err := svc.Generate(42, "gatekeeper")
	require.NoError(t, err)

	otherSvc := auth.NewJWTService("another-secret", 15, 7)
	forged, _, _, err := otherSvc.Generate(42, "gatekeeper")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "not-a-bearer-token"},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "wrong signing key", header: "Bearer " + forged},
		{name: "refresh token on access route", header: "Bearer " + refresh},
	}

	engine := newProtectedEngine(t, svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}
