package repositories

import (
	"context"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

type ArticleImageRepository interface {
	Create(ctx context.Context, image *models.ArticleImage) error
	ListByArticleID(ctx context.Context, articleID uint) ([]models.ArticleImage, error)
	DeleteByArticleID(ctx context.Context, articleID uint) error
}

type articleImageRepository struct {
	db *gorm.DB
}

func NewArticleImageRepository(db *gorm.DB) ArticleImageRepository {
	return &articleImageRepository{db: db}
}

// Create stores the image. A lead image clears the lead flag of its
// siblings and becomes the article's lead image.
func (r *articleImageRepository) Create(ctx context.Context, image *models.ArticleImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.IsLead {
			if err := tx.Model(&models.ArticleImage{}).
				Where("article_id = ?", image.ArticleID).
				Update("is_lead", false).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(image).Error; err != nil {
			return err
		}
		if !image.IsLead {
			return nil
		}
		return tx.Model(&models.Article{}).Where("id = ?", image.ArticleID).Update("lead_image_id", image.ID).Error
	})
}

func (r *articleImageRepository) ListByArticleID(ctx context.Context, articleID uint) ([]models.ArticleImage, error) {
	var images []models.ArticleImage
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("sort_order, id").
		Find(&images).Error
	return images, err
}

func (r *articleImageRepository) DeleteByArticleID(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&models.ArticleImage{}).Error
}
