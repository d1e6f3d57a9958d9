package repositories

import (
	"context"
	"time"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

type ApiClientRepository interface {
	Create(ctx context.Context, client *models.ApiClient) error
	GetActiveByHash(ctx context.Context, keyHash string) (*models.ApiClient, error)
	ListByUser(ctx context.Context, userID uint) ([]models.ApiClient, error)
	Deactivate(ctx context.Context, id, userID uint) error
	TouchLastUsed(ctx context.Context, id uint, at time.Time) error
}

type apiClientRepository struct {
	db *gorm.DB
}

func NewApiClientRepository(db *gorm.DB) ApiClientRepository {
	return &apiClientRepository{db: db}
}

func (r *apiClientRepository) Create(ctx context.Context, client *models.ApiClient) error {
	return r.db.WithContext(ctx).Omit("User").Create(client).Error
}

// GetActiveByHash returns the active client owning keyHash, with its user.
func (r *apiClientRepository) GetActiveByHash(ctx context.Context, keyHash string) (*models.ApiClient, error) {
	var client models.ApiClient
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("key_hash = ? AND is_active = ?", keyHash, true).
		First(&client).Error
	return &client, err
}

func (r *apiClientRepository) ListByUser(ctx context.Context, userID uint) ([]models.ApiClient, error) {
	var clients []models.ApiClient
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&clients).Error
	return clients, err
}

// Deactivate revokes the client. is_active defaults to true in the schema, so
// false is written through Update rather than a struct save.
func (r *apiClientRepository) Deactivate(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Model(&models.ApiClient{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *apiClientRepository) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ApiClient{}).Where("id = ?", id).Update("last_used_at", at).Error
}
