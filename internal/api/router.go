package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/api/handler"
	"github.com/qs3c/osint_go_server/internal/api/middleware"
	"github.com/qs3c/osint_go_server/internal/pkg/response"
)

type Router struct {
	searchHandler    *handler.SearchHandler
	reportHandler    *handler.ReportHandler
	websocketHandler *handler.WebSocketHandler
	cfg              *config.Config
}

func NewRouter(
	searchHandler *handler.SearchHandler,
	reportHandler *handler.ReportHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		searchHandler:    searchHandler,
		reportHandler:    reportHandler,
		websocketHandler: websocketHandler,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	// 存活探针
	engine.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		// WebSocket 进度推送
		api.GET("/ws", r.websocketHandler.Handle)

		// 业务接口，配置了 JWT secret 时才启用认证
		authenticated := api.Group("")
		if r.cfg.JWT.Secret != "" {
			authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		}
		{
			searches := authenticated.Group("/searches")
			{
				searches.POST("", r.searchHandler.Create)
				searches.GET("/:id/progress", r.searchHandler.GetProgress)
			}

			reports := authenticated.Group("/reports")
			{
				reports.POST("", r.reportHandler.Save)
				reports.GET("", r.reportHandler.List)
				reports.GET("/:id", r.reportHandler.Get)
			}
		}
	}

	return engine
}
