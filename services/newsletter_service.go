package services

import (
	"context"
	"time"

	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
)

type NewsletterService interface {
	Create(ctx context.Context, actor *models.Actor, req models.CreateNewsletterRequest) (*models.Newsletter, error)
	Update(ctx context.Context, actor *models.Actor, id uint, req models.UpdateNewsletterRequest) (*models.Newsletter, error)
	Publish(ctx context.Context, actor *models.Actor, id uint) (*models.NewsletterResult, error)
	// Get returns published newsletters to everyone and drafts only to
	// their author and editors.
	Get(ctx context.Context, actor *models.Actor, id uint) (*models.Newsletter, error)
	ListPublished(ctx context.Context, params models.ListParams) ([]models.Newsletter, int64, error)
}

type newsletterService struct {
	newsletterRepo repositories.NewsletterRepository
	publisherRepo  repositories.PublisherRepository
	log            *zap.Logger
}

func NewNewsletterService(newsletterRepo repositories.NewsletterRepository, publisherRepo repositories.PublisherRepository, log *zap.Logger) NewsletterService {
	return &newsletterService{newsletterRepo: newsletterRepo, publisherRepo: publisherRepo, log: log}
}

func (s *newsletterService) Create(ctx context.Context, actor *models.Actor, req models.CreateNewsletterRequest) (*models.Newsletter, error) {
	if err := requireRole(actor, models.RoleJournalist); err != nil {
		return nil, forbidden("only journalists can write newsletters")
	}
	if req.PublisherID != nil {
		ok, err := s.publisherRepo.IsJournalist(ctx, *req.PublisherID, actor.UserID)
		if err != nil {
			return nil, dbError(err, "publisher")
		}
		if !ok {
			return nil, models.ErrorValidation{Field: "publisher_id", Message: "author is not affiliated with this publisher"}
		}
	}

	newsletter := &models.Newsletter{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		AuthorID:    actor.UserID,
		PublisherID: req.PublisherID,
		Status:      models.NewsletterDraft,
	}
	generate := func(ctx context.Context) (string, error) {
		return s.newsletterRepo.UniqueSlug(ctx, newsletter.Title)
	}
	create := func(ctx context.Context, slug string) error {
		newsletter.ID = 0
		newsletter.Slug = slug
		return s.newsletterRepo.Create(ctx, newsletter)
	}
	if err := createWithSlug(ctx, s.log, "newsletter", req.Slug, generate, create); err != nil {
		return nil, err
	}

	created, err := s.newsletterRepo.GetByID(ctx, newsletter.ID)
	return created, dbError(err, "newsletter")
}

func (s *newsletterService) Update(ctx context.Context, actor *models.Actor, id uint, req models.UpdateNewsletterRequest) (*models.Newsletter, error) {
	newsletter, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		newsletter.Title = *req.Title
	}
	if req.Content != nil {
		newsletter.Content = *req.Content
	}
	if req.Excerpt != nil {
		newsletter.Excerpt = *req.Excerpt
	}
	if err := s.newsletterRepo.Update(ctx, newsletter); err != nil {
		return nil, dbError(err, "newsletter")
	}

	updated, err := s.newsletterRepo.GetByID(ctx, id)
	return updated, dbError(err, "newsletter")
}

func (s *newsletterService) Publish(ctx context.Context, actor *models.Actor, id uint) (*models.NewsletterResult, error) {
	newsletter, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if newsletter.Status == models.NewsletterPublished {
		return &models.NewsletterResult{Newsletter: newsletter, Warning: "newsletter is already published"}, nil
	}

	if err := s.newsletterRepo.Publish(ctx, id, time.Now()); err != nil {
		return nil, dbError(err, "newsletter")
	}
	s.log.Info("newsletter published", zap.Uint("newsletter_id", id))

	published, err := s.newsletterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "newsletter")
	}
	return &models.NewsletterResult{Newsletter: published}, nil
}

func (s *newsletterService) Get(ctx context.Context, actor *models.Actor, id uint) (*models.Newsletter, error) {
	newsletter, err := s.newsletterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "newsletter")
	}
	if newsletter.Status == models.NewsletterPublished {
		return newsletter, nil
	}
	if actor == nil || actor.ViaAPIClient() || (!actor.Is(models.RoleEditor) && actor.UserID != newsletter.AuthorID) {
		return nil, models.ErrorNotFound{Resource: "newsletter"}
	}
	return newsletter, nil
}

func (s *newsletterService) ListPublished(ctx context.Context, params models.ListParams) ([]models.Newsletter, int64, error) {
	newsletters, total, err := s.newsletterRepo.ListPublished(ctx, params)
	return newsletters, total, dbError(err, "newsletter")
}

func (s *newsletterService) owned(ctx context.Context, actor *models.Actor, id uint) (*models.Newsletter, error) {
	if err := requireRole(actor, models.RoleJournalist); err != nil {
		return nil, err
	}
	newsletter, err := s.newsletterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "newsletter")
	}
	if newsletter.AuthorID != actor.UserID {
		return nil, forbidden("only the author can change this newsletter")
	}
	return newsletter, nil
}
