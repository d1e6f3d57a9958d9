package services

import (
	"context"
	"errors"

	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, actor *models.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.Actor, req models.UpdateProfileRequest) (*models.User, error)
	RoleFlags(ctx context.Context, actor *models.Actor) (models.RoleFlags, error)
	AssignRole(ctx context.Context, actor *models.Actor, userID uint, role string) (*models.User, error)

	Subscriptions(ctx context.Context, actor *models.Actor) (*models.SubscriptionsResponse, error)
	SubscribePublisher(ctx context.Context, actor *models.Actor, publisherID uint) error
	UnsubscribePublisher(ctx context.Context, actor *models.Actor, publisherID uint) error
	FollowJournalist(ctx context.Context, actor *models.Actor, username string) error
	UnfollowJournalist(ctx context.Context, actor *models.Actor, username string) error
}

type userService struct {
	userRepo      repositories.UserRepository
	publisherRepo repositories.PublisherRepository
	log           *zap.Logger
}

func NewUserService(userRepo repositories.UserRepository, publisherRepo repositories.PublisherRepository, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, publisherRepo: publisherRepo, log: log}
}

func (s *userService) GetProfile(ctx context.Context, actor *models.Actor) (*models.User, error) {
	if err := requireRole(actor, models.Roles...); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	return user, dbError(err, "user")
}

func (s *userService) UpdateProfile(ctx context.Context, actor *models.Actor, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, dbError(err, "user")
	}
	return user, nil
}

func (s *userService) RoleFlags(ctx context.Context, actor *models.Actor) (models.RoleFlags, error) {
	user, err := s.GetProfile(ctx, actor)
	if err != nil {
		return models.RoleFlags{}, err
	}
	return user.RoleFlags(), nil
}

// AssignRole is restricted to editors. Memberships tied to the old role are
// dropped in the same transaction as the role change.
func (s *userService) AssignRole(ctx context.Context, actor *models.Actor, userID uint, roleName string) (*models.User, error) {
	if err := requireRole(actor, models.RoleEditor); err != nil {
		return nil, err
	}
	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AssignRole(ctx, userID, role); err != nil {
		return nil, dbError(err, "user")
	}
	s.log.Info("role assigned",
		zap.Uint("user_id", userID),
		zap.String("role", string(role)),
		zap.Uint("assigned_by", actor.UserID))

	user, err := s.userRepo.GetByID(ctx, userID)
	return user, dbError(err, "user")
}

func (s *userService) Subscriptions(ctx context.Context, actor *models.Actor) (*models.SubscriptionsResponse, error) {
	if err := requireRole(actor, models.Roles...); err != nil {
		return nil, err
	}
	publishers, err := s.userRepo.SubscribedPublishers(ctx, actor.UserID)
	if err != nil {
		return nil, dbError(err, "subscription")
	}
	journalists, err := s.userRepo.FollowedJournalists(ctx, actor.UserID)
	if err != nil {
		return nil, dbError(err, "subscription")
	}
	return &models.SubscriptionsResponse{Publishers: publishers, Journalists: journalists}, nil
}

func (s *userService) SubscribePublisher(ctx context.Context, actor *models.Actor, publisherID uint) error {
	if err := s.publisherForReader(ctx, actor, publisherID); err != nil {
		return err
	}
	return dbError(s.userRepo.SubscribePublisher(ctx, actor.UserID, publisherID), "subscription")
}

func (s *userService) UnsubscribePublisher(ctx context.Context, actor *models.Actor, publisherID uint) error {
	if err := s.publisherForReader(ctx, actor, publisherID); err != nil {
		return err
	}
	return dbError(s.userRepo.UnsubscribePublisher(ctx, actor.UserID, publisherID), "subscription")
}

func (s *userService) publisherForReader(ctx context.Context, actor *models.Actor, publisherID uint) error {
	if err := requireRole(actor, models.RoleReader); err != nil {
		return forbidden("only readers can subscribe to publishers")
	}
	_, err := s.publisherRepo.GetByID(ctx, publisherID)
	return dbError(err, "publisher")
}

func (s *userService) FollowJournalist(ctx context.Context, actor *models.Actor, username string) error {
	journalist, err := s.journalistForReader(ctx, actor, username)
	if err != nil {
		return err
	}
	return dbError(s.userRepo.FollowJournalist(ctx, actor.UserID, journalist.ID), "follow")
}

func (s *userService) UnfollowJournalist(ctx context.Context, actor *models.Actor, username string) error {
	journalist, err := s.journalistForReader(ctx, actor, username)
	if err != nil {
		return err
	}
	return dbError(s.userRepo.UnfollowJournalist(ctx, actor.UserID, journalist.ID), "follow")
}

func (s *userService) journalistForReader(ctx context.Context, actor *models.Actor, username string) (*models.User, error) {
	if err := requireRole(actor, models.RoleReader); err != nil {
		return nil, forbidden("only readers can follow journalists")
	}
	journalist, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Resource: "journalist"}
		}
		return nil, dbError(err, "journalist")
	}
	if !journalist.IsJournalist() {
		return nil, models.ErrorNotFound{Resource: "journalist"}
	}
	if journalist.ID == actor.UserID {
		return nil, models.ErrorValidation{Field: "username", Message: "you cannot follow yourself"}
	}
	return journalist, nil
}
