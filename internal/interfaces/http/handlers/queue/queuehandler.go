package queue

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lineup/internal/application/queue/usecases"
	"lineup/internal/infrastructure/qrcode"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
	"lineup/internal/shared/utils"
)

// QueueHandler serves the public queue surface: joining, reading the
// board, checking a single ticket, and the share link.
type QueueHandler struct {
	joinQueueUC     usecases.JoinQueueExecutor
	getQueueStateUC usecases.GetQueueStateExecutor
	getTicketUC     usecases.GetTicketExecutor
	qrGenerator     *qrcode.Generator
	logger          logger.Interface
}

func NewQueueHandler(
	joinQueueUC usecases.JoinQueueExecutor,
	getQueueStateUC usecases.GetQueueStateExecutor,
	getTicketUC usecases.GetTicketExecutor,
	qrGenerator *qrcode.Generator,
) *QueueHandler {
	return &QueueHandler{
		joinQueueUC:     joinQueueUC,
		getQueueStateUC: getQueueStateUC,
		getTicketUC:     getTicketUC,
		qrGenerator:     qrGenerator,
		logger:          logger.NewLogger(),
	}
}

// Join handles POST /api/queue/entries
func (h *QueueHandler) Join(c *gin.Context) {
	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for join queue", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.joinQueueUC.Execute(c.Request.Context(), req.ToCommand(c.ClientIP()))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, JoinQueueResponse{
		Number:         result.Number,
		Name:           result.Name,
		Status:         result.Status,
		CurrentServing: result.CurrentServing,
		Generation:     result.Generation,
		CreatedAt:      result.CreatedAt.Format(time.RFC3339),
	}, "Joined the queue")
}

// GetState handles GET /api/queue
func (h *QueueHandler) GetState(c *gin.Context) {
	result, err := h.getQueueStateUC.Execute(c.Request.Context(), usecases.GetQueueStateQuery{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicket handles GET /api/queue/tickets/:number
func (h *QueueHandler) GetTicket(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket number must be an integer"))
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{Number: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Share handles GET /api/queue/share
func (h *QueueHandler) Share(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", ShareResponse{
		JoinURL:    h.qrGenerator.JoinURL(),
		QRImageURL: h.qrGenerator.ImageURL(),
	})
}
