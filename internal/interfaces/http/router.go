package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	operatorusecases "lineup/internal/application/operator/usecases"
	queueusecases "lineup/internal/application/queue/usecases"
	"lineup/internal/infrastructure/qrcode"
	operatorhandlers "lineup/internal/interfaces/http/handlers/operator"
	queuehandlers "lineup/internal/interfaces/http/handlers/queue"
	"lineup/internal/interfaces/http/middleware"
	"lineup/internal/interfaces/ws"
	"lineup/internal/shared/config"
	"lineup/internal/shared/logger"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	ServerConfig *config.ServerConfig

	JoinQueueUC     queueusecases.JoinQueueExecutor
	GetQueueStateUC queueusecases.GetQueueStateExecutor
	GetTicketUC     queueusecases.GetTicketExecutor
	AdvanceQueueUC  queueusecases.AdvanceQueueExecutor
	ResetQueueUC    queueusecases.ResetQueueExecutor
	LoginUC         operatorusecases.LoginExecutor

	QRGenerator    *qrcode.Generator
	AuthMiddleware *middleware.AuthMiddleware
	DisplayHub     *ws.Hub
	Logger         logger.Interface
}

// NewRouter assembles the gin engine: public queue routes, operator
// login, the guarded admin routes, and the display websocket.
func NewRouter(cfg *RouterConfig) *gin.Engine {
	if cfg.ServerConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(cfg.Logger))
	engine.Use(middleware.CORS(cfg.ServerConfig.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	queueHandler := queuehandlers.NewQueueHandler(
		cfg.JoinQueueUC,
		cfg.GetQueueStateUC,
		cfg.GetTicketUC,
		cfg.QRGenerator,
	)
	adminHandler := queuehandlers.NewAdminHandler(cfg.AdvanceQueueUC, cfg.ResetQueueUC)
	operatorHandler := operatorhandlers.NewOperatorHandler(cfg.LoginUC)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		queue := api.Group("/queue")
		{
			queue.POST("/entries", queueHandler.Join)
			queue.GET("", queueHandler.GetState)
			queue.GET("/share", queueHandler.Share)
			queue.GET("/tickets/:number", queueHandler.GetTicket)
		}

		api.POST("/operator/login", operatorHandler.Login)

		admin := api.Group("/admin/queue")
		admin.Use(cfg.AuthMiddleware.RequireOperator())
		{
			admin.POST("/advance", adminHandler.Advance)
			admin.POST("/reset", adminHandler.Reset)
		}
	}

	upgrader := ws.NewUpgrader(cfg.ServerConfig.AllowedOrigins)
	engine.GET("/ws/display", ws.ServeDisplay(cfg.DisplayHub, upgrader, cfg.Logger))

	return engine
}
