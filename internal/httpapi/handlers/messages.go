package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/chat"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"gorm.io/gorm"
)

func (h *Handler) ListMessages(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid conversation id")
		return
	}

	if _, err := h.Repo.GetConversation(c.Request.Context(), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			common.Fail(c, http.StatusNotFound, 40401, "conversation not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50010, "failed to load conversation")
		return
	}

	msgs, err := h.Repo.ListMessages(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50011, "failed to list messages")
		return
	}
	common.OK(c, msgs)
}

type appendMessageReq struct {
	Role   string   `json:"role"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

func (h *Handler) AppendMessage(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid conversation id")
		return
	}

	var req appendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "invalid json")
		return
	}
	if req.Role == "" {
		req.Role = chat.RoleUser
	}
	if req.Role != chat.RoleUser && req.Role != chat.RoleAssistant {
		common.Fail(c, http.StatusBadRequest, 10004, "role must be user or assistant")
		return
	}

	if _, err := h.Repo.GetConversation(c.Request.Context(), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			common.Fail(c, http.StatusNotFound, 40401, "conversation not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50010, "failed to load conversation")
		return
	}

	m := &chat.Message{ConversationID: id, Role: req.Role, Text: req.Text}
	if err := h.Repo.AppendMessage(c.Request.Context(), m, req.Images); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50012, "failed to append message")
		return
	}
	common.OK(c, m)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid message id")
		return
	}
	if err := h.Repo.DeleteMessage(c.Request.Context(), id); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50013, "failed to delete message")
		return
	}
	common.OK(c, gin.H{"id": id})
}
