package handlers

import (
	"newsroom-cms/helper"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService services.FeedService
	siteURL     string
	Helper      *helper.HTTPHelper
}

func NewFeedHandler(feedService services.FeedService, siteURL string, h *helper.HTTPHelper) *FeedHandler {
	return &FeedHandler{feedService: feedService, siteURL: siteURL, Helper: h}
}

// GetFeed serves both /my-feed and /feed/subscribed.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	articles, total, err := h.feedService.Feed(c.Request.Context(), middleware.CurrentActor(c), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Feed loaded", models.NewArticleSummaries(articles), params, total)
}

func (h *FeedHandler) GetFeedArticle(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	article, err := h.feedService.FeedArticle(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article loaded", models.NewArticleDetail(*article, services.ArticleURL(h.siteURL, article.ID)))
}
