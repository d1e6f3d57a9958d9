package repositories

import (
	"context"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	AssignRole(ctx context.Context, userID uint, role models.Role) error

	SubscribePublisher(ctx context.Context, userID, publisherID uint) error
	UnsubscribePublisher(ctx context.Context, userID, publisherID uint) error
	FollowJournalist(ctx context.Context, followerID, journalistID uint) error
	UnfollowJournalist(ctx context.Context, followerID, journalistID uint) error
	SubscribedPublishers(ctx context.Context, userID uint) ([]models.Publisher, error)
	FollowedJournalists(ctx context.Context, userID uint) ([]models.User, error)
	Followers(ctx context.Context, journalistID uint) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("SubscribedPublishers", "FollowedJournalists").Save(user).Error
}

// AssignRole replaces the user's role and drops every membership that is
// only valid for the roles being left, all in one transaction.
func (r *userRepository) AssignRole(ctx context.Context, userID uint, role models.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if role != models.RoleEditor {
			if err := tx.Exec("DELETE FROM publisher_editors WHERE user_id = ?", userID).Error; err != nil {
				return err
			}
		}
		if role != models.RoleJournalist {
			if err := tx.Exec("DELETE FROM publisher_journalists WHERE user_id = ?", userID).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM journalist_followers WHERE journalist_id = ?", userID).Error; err != nil {
				return err
			}
		}
		if role != models.RoleReader {
			if err := tx.Exec("DELETE FROM publisher_subscribers WHERE user_id = ?", userID).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM journalist_followers WHERE follower_id = ?", userID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) SubscribePublisher(ctx context.Context, userID, publisherID uint) error {
	return r.link(ctx, "publisher_subscribers", "user_id", "publisher_id", userID, publisherID)
}

func (r *userRepository) UnsubscribePublisher(ctx context.Context, userID, publisherID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM publisher_subscribers WHERE user_id = ? AND publisher_id = ?", userID, publisherID).Error
}

func (r *userRepository) FollowJournalist(ctx context.Context, followerID, journalistID uint) error {
	return r.link(ctx, "journalist_followers", "follower_id", "journalist_id", followerID, journalistID)
}

func (r *userRepository) UnfollowJournalist(ctx context.Context, followerID, journalistID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM journalist_followers WHERE follower_id = ? AND journalist_id = ?", followerID, journalistID).Error
}

// link inserts a join row unless it already exists.
func (r *userRepository) link(ctx context.Context, table, leftCol, rightCol string, left, right uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Table(table).Where(leftCol+" = ? AND "+rightCol+" = ?", left, right).Count(&count).Error
		if err != nil || count > 0 {
			return err
		}
		return tx.Table(table).Create(map[string]any{leftCol: left, rightCol: right}).Error
	})
}

func (r *userRepository) SubscribedPublishers(ctx context.Context, userID uint) ([]models.Publisher, error) {
	var publishers []models.Publisher
	err := r.db.WithContext(ctx).
		Joins("JOIN publisher_subscribers ps ON ps.publisher_id = publishers.id").
		Where("ps.user_id = ?", userID).
		Order("publishers.name").
		Find(&publishers).Error
	return publishers, err
}

func (r *userRepository) FollowedJournalists(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN journalist_followers jf ON jf.journalist_id = users.id").
		Where("jf.follower_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

func (r *userRepository) Followers(ctx context.Context, journalistID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN journalist_followers jf ON jf.follower_id = users.id").
		Where("jf.journalist_id = ?", journalistID).
		Find(&users).Error
	return users, err
}
