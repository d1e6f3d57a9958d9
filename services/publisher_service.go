package services

import (
	"context"

	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
)

const dashboardSize = 6

type PublisherService interface {
	Create(ctx context.Context, actor *models.Actor, req models.CreatePublisherRequest) (*models.Publisher, error)
	Get(ctx context.Context, id uint) (*models.Publisher, error)
	List(ctx context.Context) ([]models.Publisher, error)
	AffiliateJournalist(ctx context.Context, actor *models.Actor, publisherID, userID uint) (*models.Publisher, error)
	Dashboard(ctx context.Context, actor *models.Actor, publisherID uint) (*models.PublisherDashboard, error)
}

type publisherService struct {
	publisherRepo repositories.PublisherRepository
	userRepo      repositories.UserRepository
	articleRepo   repositories.ArticleRepository
	log           *zap.Logger
}

func NewPublisherService(
	publisherRepo repositories.PublisherRepository,
	userRepo repositories.UserRepository,
	articleRepo repositories.ArticleRepository,
	log *zap.Logger,
) PublisherService {
	return &publisherService{
		publisherRepo: publisherRepo,
		userRepo:      userRepo,
		articleRepo:   articleRepo,
		log:           log,
	}
}

func (s *publisherService) Create(ctx context.Context, actor *models.Actor, req models.CreatePublisherRequest) (*models.Publisher, error) {
	if err := requireRole(actor, models.RoleEditor); err != nil {
		return nil, err
	}

	publisher := &models.Publisher{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	}
	if err := s.publisherRepo.Create(ctx, publisher, actor.UserID); err != nil {
		return nil, dbError(err, "publisher")
	}
	s.log.Info("publisher created", zap.Uint("publisher_id", publisher.ID), zap.Uint("editor_id", actor.UserID))

	return s.Get(ctx, publisher.ID)
}

func (s *publisherService) Get(ctx context.Context, id uint) (*models.Publisher, error) {
	publisher, err := s.publisherRepo.GetByID(ctx, id)
	return publisher, dbError(err, "publisher")
}

func (s *publisherService) List(ctx context.Context) ([]models.Publisher, error) {
	publishers, err := s.publisherRepo.GetAll(ctx)
	return publishers, dbError(err, "publisher")
}

// AffiliateJournalist lets an editor of the publisher add a journalist to
// its staff.
func (s *publisherService) AffiliateJournalist(ctx context.Context, actor *models.Actor, publisherID, userID uint) (*models.Publisher, error) {
	if err := s.requirePublisherEditor(ctx, actor, publisherID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, dbError(err, "user")
	}
	if !user.IsJournalist() {
		return nil, models.ErrorValidation{Field: "user_id", Message: "user is not a journalist"}
	}

	if err := s.publisherRepo.AddJournalist(ctx, publisherID, userID); err != nil {
		return nil, dbError(err, "publisher")
	}
	return s.Get(ctx, publisherID)
}

func (s *publisherService) Dashboard(ctx context.Context, actor *models.Actor, publisherID uint) (*models.PublisherDashboard, error) {
	if err := s.requirePublisherEditor(ctx, actor, publisherID); err != nil {
		return nil, err
	}
	publisher, err := s.Get(ctx, publisherID)
	if err != nil {
		return nil, err
	}

	filter := repositories.OwnerFilter{PublisherID: publisherID}
	dashboard := &models.PublisherDashboard{Publisher: *publisher}

	if dashboard.PublishedCount, err = s.articleRepo.CountByStatus(ctx, filter, models.StatusPublished); err != nil {
		return nil, dbError(err, "article")
	}
	if dashboard.PendingCount, err = s.articleRepo.CountByStatus(ctx, filter, models.StatusPending); err != nil {
		return nil, dbError(err, "article")
	}

	pending, err := s.articleRepo.Recent(ctx, filter, models.StatusPending, dashboardSize)
	if err != nil {
		return nil, dbError(err, "article")
	}
	recent, err := s.articleRepo.Recent(ctx, filter, models.StatusPublished, dashboardSize)
	if err != nil {
		return nil, dbError(err, "article")
	}
	dashboard.PendingArticles = models.NewArticleSummaries(pending)
	dashboard.RecentArticles = models.NewArticleSummaries(recent)

	return dashboard, nil
}

func (s *publisherService) requirePublisherEditor(ctx context.Context, actor *models.Actor, publisherID uint) error {
	if err := requireRole(actor, models.RoleEditor); err != nil {
		return err
	}
	if _, err := s.publisherRepo.GetByID(ctx, publisherID); err != nil {
		return dbError(err, "publisher")
	}
	ok, err := s.publisherRepo.IsEditor(ctx, publisherID, actor.UserID)
	if err != nil {
		return dbError(err, "publisher")
	}
	if !ok {
		return forbidden("you are not an editor of this publisher")
	}
	return nil
}
