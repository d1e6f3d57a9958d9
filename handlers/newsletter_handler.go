package handlers

import (
	"newsroom-cms/helper"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterService services.NewsletterService
	Helper            *helper.HTTPHelper
}

func NewNewsletterHandler(newsletterService services.NewsletterService, h *helper.HTTPHelper) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService, Helper: h}
}

func (h *NewsletterHandler) CreateNewsletter(c *gin.Context) {
	var req models.CreateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	newsletter, err := h.newsletterService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Newsletter created", newsletter)
}

func (h *NewsletterHandler) UpdateNewsletter(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	newsletter, err := h.newsletterService.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Newsletter updated", newsletter)
}

func (h *NewsletterHandler) PublishNewsletter(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.newsletterService.Publish(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	if result.Warning != "" {
		h.Helper.SendWarning(c, result.Warning, result.Newsletter)
		return
	}

	h.Helper.SendSuccess(c, "Newsletter published", result.Newsletter)
}

func (h *NewsletterHandler) GetNewsletter(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	newsletter, err := h.newsletterService.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Newsletter loaded", newsletter)
}

func (h *NewsletterHandler) GetNewsletters(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	newsletters, total, err := h.newsletterService.ListPublished(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Newsletters loaded", newsletters, params, total)
}
