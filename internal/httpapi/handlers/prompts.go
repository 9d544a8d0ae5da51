package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/chat"
	"github.com/kokamido/cursed-vibecode/internal/common"
)

func (h *Handler) ListSystemPrompts(c *gin.Context) {
	prompts, err := h.Repo.ListSystemPrompts(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50020, "failed to list prompts")
		return
	}
	common.OK(c, prompts)
}

type createPromptReq struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (h *Handler) CreateSystemPrompt(c *gin.Context) {
	var req createPromptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "invalid json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Text = strings.TrimSpace(req.Text)
	if req.Name == "" || req.Text == "" {
		common.Fail(c, http.StatusBadRequest, 10005, "name and text required")
		return
	}

	p := &chat.SystemPrompt{Name: req.Name, Text: req.Text}
	if err := h.Repo.CreateSystemPrompt(c.Request.Context(), p); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50021, "failed to create prompt")
		return
	}
	common.OK(c, p)
}

func (h *Handler) DeleteSystemPrompt(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid prompt id")
		return
	}
	if err := h.Repo.DeleteSystemPrompt(c.Request.Context(), id); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50022, "failed to delete prompt")
		return
	}
	common.OK(c, gin.H{"id": id})
}
