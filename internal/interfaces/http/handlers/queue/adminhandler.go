package queue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lineup/internal/application/queue/usecases"
	"lineup/internal/interfaces/http/middleware"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
	"lineup/internal/shared/utils"
)

// AdminHandler serves the operator-only ledger operations.
type AdminHandler struct {
	advanceQueueUC usecases.AdvanceQueueExecutor
	resetQueueUC   usecases.ResetQueueExecutor
	logger         logger.Interface
}

func NewAdminHandler(
	advanceQueueUC usecases.AdvanceQueueExecutor,
	resetQueueUC usecases.ResetQueueExecutor,
) *AdminHandler {
	return &AdminHandler{
		advanceQueueUC: advanceQueueUC,
		resetQueueUC:   resetQueueUC,
		logger:         logger.NewLogger(),
	}
}

// Advance handles POST /api/admin/queue/advance
func (h *AdminHandler) Advance(c *gin.Context) {
	result, err := h.advanceQueueUC.Execute(c.Request.Context(), usecases.AdvanceQueueCommand{
		OperatorID: operatorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", AdvanceQueueResponse{
		CurrentServing: result.CurrentServing,
		LastIssued:     result.LastIssued,
		Generation:     result.Generation,
		Advanced:       result.Advanced,
	})
}

// Reset handles POST /api/admin/queue/reset. The request body must carry
// confirm=true; the reset is destructive and cannot be undone.
func (h *AdminHandler) Reset(c *gin.Context) {
	var req ResetQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	if !req.Confirm {
		utils.ErrorResponseWithError(c, errors.NewValidationError("reset requires explicit confirmation"))
		return
	}

	result, err := h.resetQueueUC.Execute(c.Request.Context(), usecases.ResetQueueCommand{
		OperatorID: operatorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("queue reset by operator", "operator_id", operatorID(c))

	utils.SuccessResponse(c, http.StatusOK, "Queue reset", ResetQueueResponse{
		CurrentServing: result.CurrentServing,
		Generation:     result.Generation,
	})
}

func operatorID(c *gin.Context) uint {
	if v, ok := c.Get(middleware.ContextKeyOperatorID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
