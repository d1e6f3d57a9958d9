package repositories

import (
	"context"
	"time"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

type NewsletterRepository interface {
	Create(ctx context.Context, newsletter *models.Newsletter) error
	GetByID(ctx context.Context, id uint) (*models.Newsletter, error)
	ListPublished(ctx context.Context, params models.ListParams) ([]models.Newsletter, int64, error)
	Update(ctx context.Context, newsletter *models.Newsletter) error
	Publish(ctx context.Context, id uint, at time.Time) error
	UniqueSlug(ctx context.Context, title string) (string, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Create(ctx context.Context, newsletter *models.Newsletter) error {
	return r.db.WithContext(ctx).Omit("Author", "Publisher").Create(newsletter).Error
}

func (r *newsletterRepository) GetByID(ctx context.Context, id uint) (*models.Newsletter, error) {
	var newsletter models.Newsletter
	err := r.db.WithContext(ctx).Preload("Author").Preload("Publisher").First(&newsletter, id).Error
	return &newsletter, err
}

func (r *newsletterRepository) ListPublished(ctx context.Context, params models.ListParams) ([]models.Newsletter, int64, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Newsletter{}).Where("status = ?", models.NewsletterPublished)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var newsletters []models.Newsletter
	err := scope().
		Preload("Author").
		Preload("Publisher").
		Order("published_at DESC, id DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&newsletters).Error
	return newsletters, total, err
}

func (r *newsletterRepository) Update(ctx context.Context, newsletter *models.Newsletter) error {
	return r.db.WithContext(ctx).Model(&models.Newsletter{ID: newsletter.ID}).
		Updates(map[string]any{
			"title":      newsletter.Title,
			"content":    newsletter.Content,
			"excerpt":    newsletter.Excerpt,
			"updated_at": time.Now(),
		}).Error
}

func (r *newsletterRepository) Publish(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Newsletter{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       models.NewsletterPublished,
			"published_at": at,
			"updated_at":   at,
		}).Error
}

func (r *newsletterRepository) UniqueSlug(ctx context.Context, title string) (string, error) {
	return uniqueSlug(ctx, r.db, &models.Newsletter{}, title, "newsletter")
}
