package services

import (
	"context"
	"fmt"
	"time"

	"newsroom-cms/config"
	"newsroom-cms/metrics"
	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
)

type ApprovalService interface {
	// Review applies an editor's decision. Acting on a published or rejected
	// article is a no-op reported through ReviewResult.Warning.
	Review(ctx context.Context, actor *models.Actor, articleID uint, status models.ArticleStatus) (*models.ReviewResult, error)
	// Publish moves an article to published. A nil actor is the system.
	Publish(ctx context.Context, actor *models.Actor, articleID uint) (*models.ReviewResult, error)
}

type approvalService struct {
	articleRepo   repositories.ArticleRepository
	notifications NotificationService
	workflow      config.WorkflowConfig
	now           func() time.Time
	log           *zap.Logger
}

func NewApprovalService(
	articleRepo repositories.ArticleRepository,
	notifications NotificationService,
	workflow config.WorkflowConfig,
	log *zap.Logger,
) ApprovalService {
	return &approvalService{
		articleRepo:   articleRepo,
		notifications: notifications,
		workflow:      workflow,
		now:           time.Now,
		log:           log,
	}
}

func (s *approvalService) Review(ctx context.Context, actor *models.Actor, articleID uint, status models.ArticleStatus) (*models.ReviewResult, error) {
	if err := requireRole(actor, models.RoleEditor); err != nil {
		return nil, forbidden("only editors can review articles")
	}
	if !status.Valid() {
		return nil, models.ErrorValidation{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, dbError(err, "article")
	}
	if article.Status.Terminal() {
		return terminalWarning(article), nil
	}

	if status == models.StatusPublished || (status == models.StatusApproved && s.workflow.PublishOnApprove) {
		return s.publish(ctx, actor, article)
	}

	changed, err := s.articleRepo.SetStatus(ctx, articleID, status)
	if err != nil {
		return nil, dbError(err, "article")
	}
	if !changed {
		return s.reloadWarning(ctx, articleID)
	}
	metrics.ArticleTransitions.WithLabelValues(string(status)).Inc()
	s.log.Info("article reviewed",
		zap.Uint("article_id", articleID),
		zap.String("status", string(status)),
		zap.Uint("editor_id", actor.UserID))

	article, err = s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, dbError(err, "article")
	}
	return &models.ReviewResult{Article: article}, nil
}

func (s *approvalService) Publish(ctx context.Context, actor *models.Actor, articleID uint) (*models.ReviewResult, error) {
	if actor != nil {
		if err := requireRole(actor, models.RoleEditor); err != nil {
			return nil, forbidden("only editors can publish articles")
		}
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, dbError(err, "article")
	}
	if article.Status.Terminal() {
		return terminalWarning(article), nil
	}
	return s.publish(ctx, actor, article)
}

func (s *approvalService) publish(ctx context.Context, actor *models.Actor, article *models.Article) (*models.ReviewResult, error) {
	var approverID *uint
	if actor.Is(models.RoleEditor) {
		approverID = &actor.UserID
	}

	changed, err := s.articleRepo.MarkPublished(ctx, article.ID, approverID, s.now())
	if err != nil {
		return nil, dbError(err, "article")
	}
	if !changed {
		// A concurrent review got there first.
		return s.reloadWarning(ctx, article.ID)
	}
	metrics.ArticleTransitions.WithLabelValues(string(models.StatusPublished)).Inc()
	s.log.Info("article published", zap.Uint("article_id", article.ID), zap.Uintp("approved_by", approverID))

	s.notifications.ArticlePublished(ctx, article.ID)

	published, err := s.articleRepo.GetByID(ctx, article.ID)
	if err != nil {
		return nil, dbError(err, "article")
	}
	return &models.ReviewResult{Article: published}, nil
}

func (s *approvalService) reloadWarning(ctx context.Context, articleID uint) (*models.ReviewResult, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, dbError(err, "article")
	}
	return terminalWarning(article), nil
}

func terminalWarning(article *models.Article) *models.ReviewResult {
	return &models.ReviewResult{
		Article: article,
		Warning: fmt.Sprintf("article is already %s, no changes were made", article.Status),
	}
}
