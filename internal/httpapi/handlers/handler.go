package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/chat"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"github.com/kokamido/cursed-vibecode/internal/config"
	"github.com/kokamido/cursed-vibecode/internal/llm"
	"gorm.io/gorm"
)

type Handler struct {
	Repo    *chat.Repo
	ChatSvc *chat.Service
	Client  *llm.Client
	Cfg     config.Config
}

func NewHandler(db *gorm.DB, cfg config.Config) *Handler {
	repo := chat.NewRepo(db)
	client := llm.NewClient(cfg.UpstreamTimeout)
	return &Handler{
		Repo:    repo,
		ChatSvc: chat.NewService(repo, client),
		Client:  client,
		Cfg:     cfg,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"message": "pong"})
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
