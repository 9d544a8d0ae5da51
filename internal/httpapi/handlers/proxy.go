package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kokamido/cursed-vibecode/internal/chat"
	"github.com/kokamido/cursed-vibecode/internal/common"
	"gorm.io/gorm"
)

func (h *Handler) ProxyChatCompletions(c *gin.Context) {
	h.proxy(c, "chat/completions")
}

func (h *Handler) ProxyResponses(c *gin.Context) {
	h.proxy(c, "responses")
}

// proxy relays an upstream-shaped body verbatim, adding the endpoint's
// credentials. The upstream status and body pass through untouched.
func (h *Handler) proxy(c *gin.Context, subPath string) {
	ep, okk := h.endpointFromQuery(c)
	if !okk {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10009, "failed to read request body")
		return
	}

	status, respBody, err := h.Client.RawProxy(c.Request.Context(), ep.BaseURL, ep.APIKey, subPath, body)
	if err != nil {
		common.Fail(c, http.StatusBadGateway, 50203, "upstream request failed")
		return
	}
	c.Data(status, "application/json", respBody)
}

func (h *Handler) ListModels(c *gin.Context) {
	ep, okk := h.endpointFromQuery(c)
	if !okk {
		return
	}

	status, body, err := h.Client.ListModels(c.Request.Context(), ep.BaseURL, ep.APIKey)
	if err != nil {
		common.Fail(c, http.StatusBadGateway, 50204, "upstream request failed")
		return
	}
	c.Data(status, "application/json", body)
}

func (h *Handler) endpointFromQuery(c *gin.Context) (*chat.Endpoint, bool) {
	id, err := strconv.ParseUint(c.Query("endpoint_id"), 10, 64)
	if err != nil || id == 0 {
		common.Fail(c, http.StatusBadRequest, 10010, "endpoint_id required")
		return nil, false
	}

	ep, err := h.Repo.GetEndpoint(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			common.Fail(c, http.StatusNotFound, 40403, "endpoint not found")
			return nil, false
		}
		common.Fail(c, http.StatusInternalServerError, 50033, "failed to load endpoint")
		return nil, false
	}
	return ep, true
}
