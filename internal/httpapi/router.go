package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"github.com/kokamido/cursed-vibecode/internal/config"
	"github.com/kokamido/cursed-vibecode/internal/httpapi/handlers"
	"github.com/kokamido/cursed-vibecode/internal/httpapi/middleware"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// The browser client may be served from another origin during development.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg)

	r.GET("/ping", h.Ping)

	api := r.Group("/api")

	// Upstream surface
	api.GET("/models", h.ListModels)
	api.POST("/v1/chat/completions", h.ProxyChatCompletions)
	api.POST("/v1/responses", h.ProxyResponses)

	// Conversations
	api.GET("/conversations", h.ListConversations)
	api.POST("/conversations", h.CreateConversation)
	api.PATCH("/conversations/:id", h.UpdateConversation)
	api.DELETE("/conversations/:id", h.DeleteConversation)

	// Messages
	api.GET("/conversations/:id/messages", h.ListMessages)
	api.POST("/conversations/:id/messages", h.AppendMessage)
	api.DELETE("/messages/:id", h.DeleteMessage)

	// Orchestrated completions
	api.POST("/conversations/:id/send", h.SendCompletion)
	api.POST("/conversations/:id/retry", h.RetryCompletion)

	// System prompt library
	api.GET("/prompts", h.ListSystemPrompts)
	api.POST("/prompts", h.CreateSystemPrompt)
	api.DELETE("/prompts/:id", h.DeleteSystemPrompt)

	// Endpoints
	api.GET("/endpoints", h.ListEndpoints)
	api.POST("/endpoints", h.CreateEndpoint)
	api.DELETE("/endpoints/:id", h.DeleteEndpoint)

	api.POST("/render", h.RenderMarkdown)

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
		index := filepath.Join(cfg.StaticDir, "index.html")
		r.GET("/", func(c *gin.Context) {
			c.File(index)
		})
	}

	return r
}
