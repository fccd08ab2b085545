package operator

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/application/operator/usecases"
	"lineup/internal/interfaces/http/handlers/testutil"
	"lineup/internal/shared/errors"
)

type mockLoginUC struct {
	result *usecases.LoginResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, _ usecases.LoginCommand) (*usecases.LoginResult, error) {
	return m.result, m.err
}

func TestOperatorHandler_Login_Success(t *testing.T) {
	handler := NewOperatorHandler(&mockLoginUC{
		result: &usecases.LoginResult{
			OperatorID:   1,
			Username:     "frontdesk",
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
		},
	})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/operator/login",
		LoginRequest{Username: "frontdesk", Password: "secret"})

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "access_token")
}

func TestOperatorHandler_Login_BindError(t *testing.T) {
	handler := NewOperatorHandler(&mockLoginUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/operator/login",
		map[string]string{"username": "frontdesk"})

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOperatorHandler_Login_InvalidCredentials(t *testing.T) {
	handler := NewOperatorHandler(&mockLoginUC{
		err: errors.NewUnauthorizedError("invalid credentials"),
	})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/operator/login",
		LoginRequest{Username: "frontdesk", Password: "wrong"})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unauthorized", resp.Error.Type)
}
