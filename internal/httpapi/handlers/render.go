package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"github.com/kokamido/cursed-vibecode/internal/markdown"
)

type renderReq struct {
	Markdown string `json:"markdown"`
}

func (h *Handler) RenderMarkdown(c *gin.Context) {
	var req renderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "invalid json")
		return
	}
	common.OK(c, gin.H{"html": markdown.Render(req.Markdown)})
}
