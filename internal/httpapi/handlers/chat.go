package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/chat"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"github.com/kokamido/cursed-vibecode/internal/llm"
	"github.com/kokamido/cursed-vibecode/internal/logger"
	"gorm.io/gorm"
)

type completionReq struct {
	EndpointID uint64 `json:"endpoint_id" binding:"required"`
	Model      string `json:"model" binding:"required"`
}

func (h *Handler) SendCompletion(c *gin.Context) {
	h.runCompletion(c, h.ChatSvc.Send)
}

func (h *Handler) RetryCompletion(c *gin.Context) {
	h.runCompletion(c, h.ChatSvc.Retry)
}

func (h *Handler) runCompletion(c *gin.Context, op func(ctx context.Context, conversationID, endpointID uint64, model string) (*chat.Message, error)) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid conversation id")
		return
	}

	var req completionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "endpoint_id and model required")
		return
	}

	msg, err := op(c.Request.Context(), id, req.EndpointID, req.Model)
	if err != nil {
		h.failCompletion(c, err)
		return
	}
	common.OK(c, msg)
}

func (h *Handler) failCompletion(c *gin.Context, err error) {
	var ue *llm.UpstreamError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		common.Fail(c, http.StatusNotFound, 40402, "conversation or endpoint not found")
	case errors.Is(err, chat.ErrEmptyConversation), errors.Is(err, chat.ErrNoAssistantTurn):
		common.Fail(c, http.StatusBadRequest, 10008, err.Error())
	case errors.As(err, &ue):
		// Surface the upstream payload verbatim; the user decides whether
		// to retry.
		common.Fail(c, http.StatusBadGateway, 50201, ue.Error())
	default:
		slog.Error("completion failed", logger.Err(err))
		common.Fail(c, http.StatusBadGateway, 50202, "upstream request failed")
	}
}
