package handlers

import (
	"newsroom-cms/helper"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService  services.ArticleService
	approvalService services.ApprovalService
	siteURL         string
	Helper          *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, approvalService services.ApprovalService, siteURL string, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{
		articleService:  articleService,
		approvalService: approvalService,
		siteURL:         siteURL,
		Helper:          h,
	}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Article created", article)
}

func (h *ArticleHandler) GetPublicArticles(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	articles, total, err := h.articleService.GetPublishedArticles(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Articles loaded", models.NewArticleSummaries(articles), params, total)
}

func (h *ArticleHandler) GetPublicArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetPublishedArticle(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article loaded", models.NewArticleDetail(*article, services.ArticleURL(h.siteURL, article.ID)))
}

func (h *ArticleHandler) GetPublisherArticles(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	articles, total, err := h.articleService.GetPublisherArticles(c.Request.Context(), id, params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Articles loaded", models.NewArticleSummaries(articles), params, total)
}

func (h *ArticleHandler) GetJournalistArticles(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	profile, articles, total, err := h.articleService.GetJournalistArticles(c.Request.Context(), c.Param("username"), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Articles loaded", map[string]interface{}{
		"journalist": profile,
		"items":      models.NewArticleSummaries(articles),
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetManagedArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetManagedArticle(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article loaded", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.articleService.DeleteArticle(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article deleted", h.Helper.EmptyJsonMap())
}

func (h *ArticleHandler) SubmitArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.articleService.SubmitArticle(c.Request.Context(), middleware.CurrentActor(c), id)
	h.sendReview(c, "Article submitted", result, err)
}

func (h *ArticleHandler) ReviewArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.ReviewArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	result, err := h.approvalService.Review(c.Request.Context(), middleware.CurrentActor(c), id, req.Status)
	h.sendReview(c, "Article reviewed", result, err)
}

func (h *ArticleHandler) PublishArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.approvalService.Publish(c.Request.Context(), middleware.CurrentActor(c), id)
	h.sendReview(c, "Article published", result, err)
}

func (h *ArticleHandler) sendReview(c *gin.Context, message string, result *models.ReviewResult, err error) {
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	if result.Warning != "" {
		h.Helper.SendWarning(c, result.Warning, result.Article)
		return
	}
	h.Helper.SendSuccess(c, message, result.Article)
}

func (h *ArticleHandler) AddImage(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.CreateArticleImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	image, err := h.articleService.AddImage(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Image added", image)
}

func (h *ArticleHandler) JournalistDashboard(c *gin.Context) {
	dashboard, err := h.articleService.JournalistDashboard(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Dashboard loaded", dashboard)
}
