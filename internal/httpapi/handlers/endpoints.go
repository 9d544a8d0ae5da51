package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/chat"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"github.com/kokamido/cursed-vibecode/internal/llm"
)

func (h *Handler) ListEndpoints(c *gin.Context) {
	eps, err := h.Repo.ListEndpoints(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50030, "failed to list endpoints")
		return
	}
	common.OK(c, eps)
}

type createEndpointReq struct {
	Name                 string  `json:"name"`
	BaseURL              string  `json:"base_url"`
	APIKey               string  `json:"api_key"`
	CostPerMillionInput  float64 `json:"cost_per_million_input"`
	CostPerMillionOutput float64 `json:"cost_per_million_output"`
	APIFormat            string  `json:"api_format"`
}

func (h *Handler) CreateEndpoint(c *gin.Context) {
	var req createEndpointReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "invalid json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.BaseURL = strings.TrimSpace(req.BaseURL)
	if req.Name == "" || req.BaseURL == "" {
		common.Fail(c, http.StatusBadRequest, 10006, "name and base_url required")
		return
	}
	format, err := llm.ParseFormat(req.APIFormat)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10007, "api_format must be chat_completions or responses")
		return
	}

	ep := &chat.Endpoint{
		Name:                 req.Name,
		BaseURL:              req.BaseURL,
		APIKey:               req.APIKey,
		CostPerMillionInput:  req.CostPerMillionInput,
		CostPerMillionOutput: req.CostPerMillionOutput,
		APIFormat:            string(format),
	}
	if err := h.Repo.CreateEndpoint(c.Request.Context(), ep); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50031, "failed to create endpoint")
		return
	}
	common.OK(c, ep)
}

func (h *Handler) DeleteEndpoint(c *gin.Context) {
	id, okk := idParam(c)
	if !okk {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid endpoint id")
		return
	}
	if err := h.Repo.DeleteEndpoint(c.Request.Context(), id); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50032, "failed to delete endpoint")
		return
	}
	common.OK(c, gin.H{"id": id})
}
