package operator

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lineup/internal/application/operator/usecases"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
	"lineup/internal/shared/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128"`
}

type LoginResponse struct {
	OperatorID   uint   `json:"operator_id"`
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type OperatorHandler struct {
	loginUC usecases.LoginExecutor
	logger  logger.Interface
}

func NewOperatorHandler(loginUC usecases.LoginExecutor) *OperatorHandler {
	return &OperatorHandler{
		loginUC: loginUC,
		logger:  logger.NewLogger(),
	}
}

// Login handles POST /api/operator/login
func (h *OperatorHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", LoginResponse{
		OperatorID:   result.OperatorID,
		Username:     result.Username,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}
