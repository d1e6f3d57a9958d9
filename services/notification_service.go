package services

import (
	"context"
	"fmt"

	"newsroom-cms/metrics"
	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"go.uber.org/zap"
)

// Mailer is the outbound mail transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type NotificationService interface {
	// ArticlePublished notifies subscribers and followers of a newly
	// published article at most once per publish. It returns the number of
	// messages handed to the transport. Failures are logged, never returned.
	ArticlePublished(ctx context.Context, articleID uint) int
}

type notificationService struct {
	articleRepo   repositories.ArticleRepository
	publisherRepo repositories.PublisherRepository
	userRepo      repositories.UserRepository
	mailer        Mailer
	siteURL       string
	log           *zap.Logger
}

// NewNotificationService accepts a nil mailer when no transport is
// configured. Batches are then claimed and skipped.
func NewNotificationService(
	articleRepo repositories.ArticleRepository,
	publisherRepo repositories.PublisherRepository,
	userRepo repositories.UserRepository,
	mailer Mailer,
	siteURL string,
	log *zap.Logger,
) NotificationService {
	return &notificationService{
		articleRepo:   articleRepo,
		publisherRepo: publisherRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		siteURL:       siteURL,
		log:           log,
	}
}

func (s *notificationService) ArticlePublished(ctx context.Context, articleID uint) int {
	log := s.log.With(zap.Uint("article_id", articleID))

	claimed, err := s.articleRepo.ClaimNotifications(ctx, articleID)
	if err != nil {
		log.Error("claim notification batch", zap.Error(err))
		metrics.NotificationBatches.WithLabelValues("failed").Inc()
		return 0
	}
	if !claimed {
		log.Debug("notification batch already claimed")
		return 0
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		log.Error("load published article", zap.Error(err))
		metrics.NotificationBatches.WithLabelValues("failed").Inc()
		return 0
	}

	recipients, err := s.recipients(ctx, article)
	if err != nil {
		log.Error("resolve notification recipients", zap.Error(err))
		metrics.NotificationBatches.WithLabelValues("failed").Inc()
		return 0
	}
	if len(recipients) == 0 {
		metrics.NotificationBatches.WithLabelValues("skipped").Inc()
		return 0
	}
	if s.mailer == nil {
		log.Warn("mail transport not configured, skipping notifications", zap.Int("recipients", len(recipients)))
		metrics.NotificationBatches.WithLabelValues("skipped").Inc()
		return 0
	}

	subject, body := s.compose(article)
	sent := 0
	for _, user := range recipients {
		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			log.Warn("send notification", zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}
		sent++
	}
	metrics.NotificationMessages.Add(float64(sent))

	outcome := "sent"
	if sent < len(recipients) {
		outcome = "failed"
	}
	metrics.NotificationBatches.WithLabelValues(outcome).Inc()
	log.Info("notifications dispatched", zap.Int("sent", sent), zap.Int("recipients", len(recipients)))

	return sent
}

// recipients is the publisher's subscribers plus the author's followers,
// deduplicated by user id. Users without an email address are skipped.
func (s *notificationService) recipients(ctx context.Context, article *models.Article) ([]models.User, error) {
	var candidates []models.User

	if article.PublisherID != nil {
		subscribers, err := s.publisherRepo.SubscribedReaders(ctx, *article.PublisherID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, subscribers...)
	}
	if article.Author.IsJournalist() {
		followers, err := s.userRepo.Followers(ctx, article.AuthorID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, followers...)
	}

	seen := make(map[uint]struct{}, len(candidates))
	out := make([]models.User, 0, len(candidates))
	for _, user := range candidates {
		if user.Email == "" {
			continue
		}
		if _, ok := seen[user.ID]; ok {
			continue
		}
		seen[user.ID] = struct{}{}
		out = append(out, user)
	}
	return out, nil
}

func (s *notificationService) compose(article *models.Article) (string, string) {
	subject := fmt.Sprintf("New Article: %s", article.Title)
	body := fmt.Sprintf("New article '%s' by %s.\n\nRead here: %s\n\nBest,\nNews Platform",
		article.Title, article.Author.FullName(), ArticleURL(s.siteURL, article.ID))
	return subject, body
}

// ArticleURL is the absolute public link of an article.
func ArticleURL(siteURL string, id uint) string {
	return fmt.Sprintf("%s/articles/%d", siteURL, id)
}
