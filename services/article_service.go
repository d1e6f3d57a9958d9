package services

import (
	"context"
	"errors"
	"fmt"

	"newsroom-cms/metrics"
	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ArticleService interface {
	CreateArticle(ctx context.Context, actor *models.Actor, req models.CreateArticleRequest) (*models.Article, error)
	GetManagedArticle(ctx context.Context, actor *models.Actor, id uint) (*models.Article, error)
	UpdateArticle(ctx context.Context, actor *models.Actor, id uint, req models.UpdateArticleRequest) (*models.Article, error)
	SubmitArticle(ctx context.Context, actor *models.Actor, id uint) (*models.ReviewResult, error)
	DeleteArticle(ctx context.Context, actor *models.Actor, id uint) error
	AddImage(ctx context.Context, actor *models.Actor, id uint, req models.CreateArticleImageRequest) (*models.ArticleImage, error)

	GetPublishedArticle(ctx context.Context, id uint) (*models.Article, error)
	GetPublishedArticles(ctx context.Context, params models.ListParams) ([]models.Article, int64, error)
	GetPublisherArticles(ctx context.Context, publisherID uint, params models.ListParams) ([]models.Article, int64, error)
	GetJournalistArticles(ctx context.Context, username string, params models.ListParams) (*models.JournalistProfile, []models.Article, int64, error)
	JournalistDashboard(ctx context.Context, actor *models.Actor) (*models.JournalistDashboard, error)
}

type articleService struct {
	articleRepo   repositories.ArticleRepository
	imageRepo     repositories.ArticleImageRepository
	categoryRepo  repositories.CategoryRepository
	publisherRepo repositories.PublisherRepository
	userRepo      repositories.UserRepository
	log           *zap.Logger
}

func NewArticleService(
	articleRepo repositories.ArticleRepository,
	imageRepo repositories.ArticleImageRepository,
	categoryRepo repositories.CategoryRepository,
	publisherRepo repositories.PublisherRepository,
	userRepo repositories.UserRepository,
	log *zap.Logger,
) ArticleService {
	return &articleService{
		articleRepo:   articleRepo,
		imageRepo:     imageRepo,
		categoryRepo:  categoryRepo,
		publisherRepo: publisherRepo,
		userRepo:      userRepo,
		log:           log,
	}
}

func (s *articleService) CreateArticle(ctx context.Context, actor *models.Actor, req models.CreateArticleRequest) (*models.Article, error) {
	if err := requireRole(actor, models.RoleJournalist); err != nil {
		return nil, forbidden("only journalists can write articles")
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.ArticleStatus(req.Status)
	}

	if req.PublisherID != nil {
		if err := s.checkAffiliation(ctx, *req.PublisherID, actor.UserID); err != nil {
			return nil, err
		}
	}

	// Process categories
	categories, err := s.categories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		PublisherID: req.PublisherID,
		AuthorID:    actor.UserID,
		Status:      status,
		Categories:  categories,
	}

	if err := s.insertWithSlug(ctx, article, req.Slug); err != nil {
		return nil, err
	}
	metrics.ArticleTransitions.WithLabelValues(string(status)).Inc()
	s.log.Info("article created",
		zap.Uint("article_id", article.ID),
		zap.String("slug", article.Slug),
		zap.String("status", string(status)))

	// Load the complete article
	created, err := s.articleRepo.GetByID(ctx, article.ID)
	return created, dbError(err, "article")
}

func (s *articleService) insertWithSlug(ctx context.Context, article *models.Article, explicit string) error {
	generate := func(ctx context.Context) (string, error) {
		return s.articleRepo.UniqueSlug(ctx, article.Title)
	}
	create := func(ctx context.Context, slug string) error {
		article.ID = 0
		article.Slug = slug
		return s.articleRepo.Create(ctx, article)
	}
	return createWithSlug(ctx, s.log, "article", explicit, generate, create)
}

func (s *articleService) GetManagedArticle(ctx context.Context, actor *models.Actor, id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "article")
	}
	if !canManage(actor, article) {
		return nil, forbidden("you cannot manage this article")
	}
	images, err := s.imageRepo.ListByArticleID(ctx, id)
	if err != nil {
		return nil, dbError(err, "article image")
	}
	article.Images = images
	return article, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, actor *models.Actor, id uint, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.GetManagedArticle(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	switch {
	case req.Independent:
		article.PublisherID = nil
	case req.PublisherID != nil:
		if err := s.checkAffiliation(ctx, *req.PublisherID, article.AuthorID); err != nil {
			return nil, err
		}
		article.PublisherID = req.PublisherID
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, dbError(err, "article")
	}

	if req.CategoryIDs != nil {
		categories, err := s.categories(ctx, req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.articleRepo.ReplaceCategories(ctx, article, categories); err != nil {
			return nil, dbError(err, "article")
		}
	}

	updated, err := s.articleRepo.GetByID(ctx, id)
	return updated, dbError(err, "article")
}

// SubmitArticle sends the author's draft to the review queue.
func (s *articleService) SubmitArticle(ctx context.Context, actor *models.Actor, id uint) (*models.ReviewResult, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "article")
	}
	if !actor.Is(models.RoleJournalist) || actor.ViaAPIClient() || article.AuthorID != actor.UserID {
		return nil, forbidden("only the author can submit this article")
	}
	if article.Status != models.StatusDraft {
		return &models.ReviewResult{
			Article: article,
			Warning: fmt.Sprintf("article is %s, only drafts can be submitted", article.Status),
		}, nil
	}

	if _, err := s.articleRepo.SetStatus(ctx, id, models.StatusPending); err != nil {
		return nil, dbError(err, "article")
	}
	metrics.ArticleTransitions.WithLabelValues(string(models.StatusPending)).Inc()

	submitted, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "article")
	}
	return &models.ReviewResult{Article: submitted}, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, actor *models.Actor, id uint) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return dbError(err, "article")
	}
	if !canManage(actor, article) {
		return forbidden("you cannot delete this article")
	}

	if err := s.imageRepo.DeleteByArticleID(ctx, id); err != nil {
		return dbError(err, "article image")
	}
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return dbError(err, "article")
	}
	s.log.Info("article deleted", zap.Uint("article_id", id), zap.Uint("deleted_by", actor.UserID))
	return nil
}

func (s *articleService) AddImage(ctx context.Context, actor *models.Actor, id uint, req models.CreateArticleImageRequest) (*models.ArticleImage, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "article")
	}
	if !canManage(actor, article) {
		return nil, forbidden("you cannot add images to this article")
	}

	image := &models.ArticleImage{
		ArticleID: id,
		ImageURL:  req.ImageURL,
		Caption:   req.Caption,
		AltText:   req.AltText,
		IsLead:    req.IsLead,
		Order:     req.Order,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, dbError(err, "article image")
	}
	return image, nil
}

func (s *articleService) GetPublishedArticle(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetPublishedByID(ctx, id)
	return article, dbError(err, "article")
}

func (s *articleService) GetPublishedArticles(ctx context.Context, params models.ListParams) ([]models.Article, int64, error) {
	articles, total, err := s.articleRepo.ListPublished(ctx, repositories.PublishedFilter{}, params)
	return articles, total, dbError(err, "article")
}

func (s *articleService) GetPublisherArticles(ctx context.Context, publisherID uint, params models.ListParams) ([]models.Article, int64, error) {
	if _, err := s.publisherRepo.GetByID(ctx, publisherID); err != nil {
		return nil, 0, dbError(err, "publisher")
	}
	articles, total, err := s.articleRepo.ListPublished(ctx, repositories.PublishedFilter{PublisherID: publisherID}, params)
	return articles, total, dbError(err, "article")
}

func (s *articleService) GetJournalistArticles(ctx context.Context, username string, params models.ListParams) (*models.JournalistProfile, []models.Article, int64, error) {
	journalist, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil || !journalist.IsJournalist() {
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, models.ErrorNotFound{Resource: "journalist"}
		}
		return nil, nil, 0, dbError(err, "journalist")
	}

	articles, total, err := s.articleRepo.ListPublished(ctx, repositories.PublishedFilter{AuthorID: journalist.ID}, params)
	if err != nil {
		return nil, nil, 0, dbError(err, "article")
	}

	profile := &models.JournalistProfile{
		Username: journalist.Username,
		FullName: journalist.FullName(),
	}
	if journalist.Bio != "" {
		profile.Bio = &journalist.Bio
	}
	return profile, articles, total, nil
}

func (s *articleService) JournalistDashboard(ctx context.Context, actor *models.Actor) (*models.JournalistDashboard, error) {
	if err := requireRole(actor, models.RoleJournalist); err != nil {
		return nil, err
	}

	filter := repositories.OwnerFilter{AuthorID: actor.UserID}
	dashboard := &models.JournalistDashboard{}
	var err error

	if dashboard.PublishedCount, err = s.articleRepo.CountByStatus(ctx, filter, models.StatusPublished); err != nil {
		return nil, dbError(err, "article")
	}
	if dashboard.PendingCount, err = s.articleRepo.CountByStatus(ctx, filter, models.StatusPending); err != nil {
		return nil, dbError(err, "article")
	}
	if dashboard.DraftCount, err = s.articleRepo.CountByStatus(ctx, filter, models.StatusDraft); err != nil {
		return nil, dbError(err, "article")
	}

	recent, err := s.articleRepo.Recent(ctx, filter, "", dashboardSize)
	if err != nil {
		return nil, dbError(err, "article")
	}
	dashboard.RecentArticles = models.NewArticleSummaries(recent)
	return dashboard, nil
}

// checkAffiliation requires the publisher to exist and the author to be one
// of its journalists.
func (s *articleService) checkAffiliation(ctx context.Context, publisherID, authorID uint) error {
	if _, err := s.publisherRepo.GetByID(ctx, publisherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorValidation{Field: "publisher_id", Message: "publisher does not exist"}
		}
		return dbError(err, "publisher")
	}
	ok, err := s.publisherRepo.IsJournalist(ctx, publisherID, authorID)
	if err != nil {
		return dbError(err, "publisher")
	}
	if !ok {
		return models.ErrorValidation{Field: "publisher_id", Message: "author is not affiliated with this publisher"}
	}
	return nil
}

func (s *articleService) categories(ctx context.Context, ids []uint) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, dbError(err, "category")
	}
	if len(categories) != len(uniqueIDs(ids)) {
		return nil, models.ErrorValidation{Field: "category_ids", Message: "one or more categories do not exist"}
	}
	return categories, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// canManage is true for any editor and for the journalist who wrote the
// article. API clients never manage content.
func canManage(actor *models.Actor, article *models.Article) bool {
	if actor == nil || actor.ViaAPIClient() {
		return false
	}
	if actor.Is(models.RoleEditor) {
		return true
	}
	return actor.Is(models.RoleJournalist) && article.AuthorID == actor.UserID
}
