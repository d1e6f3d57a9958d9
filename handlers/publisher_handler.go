package handlers

import (
	"newsroom-cms/helper"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

type PublisherHandler struct {
	publisherService services.PublisherService
	Helper           *helper.HTTPHelper
}

func NewPublisherHandler(publisherService services.PublisherService, h *helper.HTTPHelper) *PublisherHandler {
	return &PublisherHandler{publisherService: publisherService, Helper: h}
}

func (h *PublisherHandler) CreatePublisher(c *gin.Context) {
	var req models.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	publisher, err := h.publisherService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Publisher created", publisher)
}

func (h *PublisherHandler) GetPublishers(c *gin.Context) {
	publishers, err := h.publisherService.List(c.Request.Context())
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Publishers loaded", publishers)
}

func (h *PublisherHandler) GetPublisher(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	publisher, err := h.publisherService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Publisher loaded", publisher)
}

func (h *PublisherHandler) AffiliateJournalist(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.AffiliateJournalistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	publisher, err := h.publisherService.AffiliateJournalist(c.Request.Context(), middleware.CurrentActor(c), id, req.UserID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Journalist affiliated", publisher)
}

func (h *PublisherHandler) Dashboard(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	dashboard, err := h.publisherService.Dashboard(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Dashboard loaded", dashboard)
}
