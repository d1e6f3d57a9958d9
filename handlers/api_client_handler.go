package handlers

import (
	"newsroom-cms/helper"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

type ApiClientHandler struct {
	clientService services.ApiClientService
	Helper        *helper.HTTPHelper
}

func NewApiClientHandler(clientService services.ApiClientService, h *helper.HTTPHelper) *ApiClientHandler {
	return &ApiClientHandler{clientService: clientService, Helper: h}
}

func (h *ApiClientHandler) CreateClient(c *gin.Context) {
	var req models.CreateApiClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	created, err := h.clientService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "API client created, store the key now, it will not be shown again", created)
}

func (h *ApiClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "API clients loaded", clients)
}

func (h *ApiClientHandler) DeactivateClient(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Deactivate(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "API client deactivated", h.Helper.EmptyJsonMap())
}
