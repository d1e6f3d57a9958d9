package services

import (
	"context"
	"errors"

	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"gorm.io/gorm"
)

type FeedService interface {
	// Feed lists published articles from the viewer's subscribed publishers
	// and independent articles by journalists they follow, newest first.
	Feed(ctx context.Context, actor *models.Actor, params models.ListParams) ([]models.Article, int64, error)
	// FeedArticle returns one article only if it is in the viewer's feed.
	FeedArticle(ctx context.Context, actor *models.Actor, articleID uint) (*models.Article, error)
	ReaderDashboard(ctx context.Context, actor *models.Actor) (*models.ReaderDashboard, error)
}

type feedService struct {
	articleRepo repositories.ArticleRepository
	users       UserService
}

func NewFeedService(articleRepo repositories.ArticleRepository, users UserService) FeedService {
	return &feedService{articleRepo: articleRepo, users: users}
}

func (s *feedService) Feed(ctx context.Context, actor *models.Actor, params models.ListParams) ([]models.Article, int64, error) {
	if actor == nil {
		return nil, 0, models.ErrorUnauthorized{Message: "authentication required"}
	}
	articles, total, err := s.articleRepo.Feed(ctx, actor.UserID, params)
	return articles, total, dbError(err, "article")
}

func (s *feedService) FeedArticle(ctx context.Context, actor *models.Actor, articleID uint) (*models.Article, error) {
	if actor == nil {
		return nil, models.ErrorUnauthorized{Message: "authentication required"}
	}
	article, err := s.articleRepo.FeedArticle(ctx, actor.UserID, articleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Out of scope and missing look the same.
		return nil, models.ErrorNotFound{Resource: "article"}
	}
	return article, dbError(err, "article")
}

func (s *feedService) ReaderDashboard(ctx context.Context, actor *models.Actor) (*models.ReaderDashboard, error) {
	if err := requireRole(actor, models.RoleReader); err != nil {
		return nil, err
	}
	subscriptions, err := s.users.Subscriptions(ctx, actor)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.articleRepo.Feed(ctx, actor.UserID, models.ListParams{Page: 1, Limit: dashboardSize})
	if err != nil {
		return nil, dbError(err, "article")
	}
	return &models.ReaderDashboard{
		SubscriptionsResponse: *subscriptions,
		RecentFeed:            models.NewArticleSummaries(recent),
	}, nil
}
