package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"newsroom-cms/metrics"
	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	apiKeyBytes     = 48
	apiKeyPrefixLen = 8
)

type ApiClientService interface {
	// Create issues a new key for a reader. The raw key is only ever
	// returned here.
	Create(ctx context.Context, actor *models.Actor, req models.CreateApiClientRequest) (*models.ApiClientCreated, error)
	List(ctx context.Context, actor *models.Actor) ([]models.ApiClient, error)
	Deactivate(ctx context.Context, actor *models.Actor, id uint) error
	// Authenticate resolves a raw key to an actor acting as the linked
	// reader. Unknown and inactive keys are ErrorUnauthorized with code
	// invalid_api_key.
	Authenticate(ctx context.Context, key string) (*models.Actor, error)
}

type apiClientService struct {
	clientRepo repositories.ApiClientRepository
	now        func() time.Time
	log        *zap.Logger
}

func NewApiClientService(clientRepo repositories.ApiClientRepository, log *zap.Logger) ApiClientService {
	return &apiClientService{clientRepo: clientRepo, now: time.Now, log: log}
}

func (s *apiClientService) Create(ctx context.Context, actor *models.Actor, req models.CreateApiClientRequest) (*models.ApiClientCreated, error) {
	if err := requireRole(actor, models.RoleReader); err != nil {
		return nil, forbidden("API clients can only be linked to readers")
	}

	key, err := GenerateAPIKey()
	if err != nil {
		return nil, models.ErrorInternalServer{Err: err}
	}

	client := &models.ApiClient{
		Name:        req.Name,
		Description: req.Description,
		KeyHash:     HashAPIKey(key),
		KeyPrefix:   key[:apiKeyPrefixLen],
		UserID:      actor.UserID,
		IsActive:    true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "an API client with this name already exists"}
		}
		return nil, dbError(err, "api client")
	}
	s.log.Info("api client created", zap.Uint("client_id", client.ID), zap.String("key_prefix", client.KeyPrefix))

	return &models.ApiClientCreated{Client: *client, APIKey: key}, nil
}

func (s *apiClientService) List(ctx context.Context, actor *models.Actor) ([]models.ApiClient, error) {
	if err := requireRole(actor, models.Roles...); err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListByUser(ctx, actor.UserID)
	return clients, dbError(err, "api client")
}

func (s *apiClientService) Deactivate(ctx context.Context, actor *models.Actor, id uint) error {
	if err := requireRole(actor, models.Roles...); err != nil {
		return err
	}
	if err := s.clientRepo.Deactivate(ctx, id, actor.UserID); err != nil {
		return dbError(err, "api client")
	}
	s.log.Info("api client deactivated", zap.Uint("client_id", id))
	return nil
}

func (s *apiClientService) Authenticate(ctx context.Context, key string) (*models.Actor, error) {
	client, err := s.clientRepo.GetActiveByHash(ctx, HashAPIKey(key))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.APIKeyAuth.WithLabelValues("invalid").Inc()
			return nil, models.ErrorUnauthorized{Code: models.CodeInvalidAPIKey, Message: "invalid or inactive API key"}
		}
		return nil, dbError(err, "api client")
	}
	metrics.APIKeyAuth.WithLabelValues("ok").Inc()

	if err := s.clientRepo.TouchLastUsed(ctx, client.ID, s.now()); err != nil {
		s.log.Warn("update api client last_used_at", zap.Uint("client_id", client.ID), zap.Error(err))
	}

	clientID := client.ID
	return &models.Actor{
		UserID:      client.UserID,
		Username:    client.User.Username,
		Role:        client.User.Role,
		APIClientID: &clientID,
	}, nil
}

// GenerateAPIKey returns 48 random bytes as unpadded URL-safe base64, which
// is 64 characters.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashAPIKey is the stored form of a key: hex SHA-256.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
