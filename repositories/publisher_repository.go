package repositories

import (
	"context"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

type PublisherRepository interface {
	Create(ctx context.Context, publisher *models.Publisher, editorID uint) error
	GetByID(ctx context.Context, id uint) (*models.Publisher, error)
	GetAll(ctx context.Context) ([]models.Publisher, error)
	AddJournalist(ctx context.Context, publisherID, journalistID uint) error
	IsJournalist(ctx context.Context, publisherID, journalistID uint) (bool, error)
	IsEditor(ctx context.Context, publisherID, editorID uint) (bool, error)
	SubscribedReaders(ctx context.Context, publisherID uint) ([]models.User, error)
}

type publisherRepository struct {
	db *gorm.DB
}

func NewPublisherRepository(db *gorm.DB) PublisherRepository {
	return &publisherRepository{db: db}
}

// Create stores the publisher and makes editorID its first editor.
func (r *publisherRepository) Create(ctx context.Context, publisher *models.Publisher, editorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Editors", "Journalists", "SubscribedReaders").Create(publisher).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO publisher_editors (publisher_id, user_id) VALUES (?, ?)", publisher.ID, editorID).Error
	})
}

func (r *publisherRepository) GetByID(ctx context.Context, id uint) (*models.Publisher, error) {
	var publisher models.Publisher
	err := r.db.WithContext(ctx).
		Preload("Editors").
		Preload("Journalists").
		First(&publisher, id).Error
	return &publisher, err
}

func (r *publisherRepository) GetAll(ctx context.Context) ([]models.Publisher, error) {
	var publishers []models.Publisher
	err := r.db.WithContext(ctx).Order("name").Find(&publishers).Error
	return publishers, err
}

func (r *publisherRepository) AddJournalist(ctx context.Context, publisherID, journalistID uint) error {
	if ok, err := r.IsJournalist(ctx, publisherID, journalistID); err != nil || ok {
		return err
	}
	return r.db.WithContext(ctx).
		Exec("INSERT INTO publisher_journalists (publisher_id, user_id) VALUES (?, ?)", publisherID, journalistID).Error
}

func (r *publisherRepository) IsJournalist(ctx context.Context, publisherID, journalistID uint) (bool, error) {
	return r.member(ctx, "publisher_journalists", publisherID, journalistID)
}

func (r *publisherRepository) IsEditor(ctx context.Context, publisherID, editorID uint) (bool, error) {
	return r.member(ctx, "publisher_editors", publisherID, editorID)
}

func (r *publisherRepository) member(ctx context.Context, table string, publisherID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).
		Where("publisher_id = ? AND user_id = ?", publisherID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *publisherRepository) SubscribedReaders(ctx context.Context, publisherID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN publisher_subscribers ps ON ps.user_id = users.id").
		Where("ps.publisher_id = ?", publisherID).
		Find(&users).Error
	return users, err
}
