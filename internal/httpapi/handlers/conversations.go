package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"gorm.io/gorm"
)

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.Repo.ListConversations(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to list conversations")
		return
	}
	common.OK(c, convs)
}

func (h *Handler) CreateConversation(c *gin.Context) {
	conv, err := h.Repo.CreateConversation(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to create conversation")
		return
	}
	common.OK(c, conv)
}

type updateConversationReq struct {
	Title        *string `json:"title"`
	SystemPrompt *string `json:"system_prompt"`
}

func (h *Handler) UpdateConversation(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid conversation id")
		return
	}

	var req updateConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "invalid json")
		return
	}

	if _, err := h.Repo.GetConversation(c.Request.Context(), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			common.Fail(c, http.StatusNotFound, 40401, "conversation not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to load conversation")
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			common.Fail(c, http.StatusBadRequest, 10003, "title required")
			return
		}
		if err := h.Repo.RenameConversation(c.Request.Context(), id, title); err != nil {
			common.Fail(c, http.StatusInternalServerError, 50004, "failed to rename conversation")
			return
		}
	}
	if req.SystemPrompt != nil {
		if err := h.Repo.SetConversationSystemPrompt(c.Request.Context(), id, *req.SystemPrompt); err != nil {
			common.Fail(c, http.StatusInternalServerError, 50005, "failed to set system prompt")
			return
		}
	}

	common.OK(c, gin.H{"id": id})
}

func (h *Handler) DeleteConversation(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid conversation id")
		return
	}
	if err := h.Repo.DeleteConversation(c.Request.Context(), id); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50006, "failed to delete conversation")
		return
	}
	common.OK(c, gin.H{"id": id})
}
