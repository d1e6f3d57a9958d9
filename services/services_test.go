package services_test

import (
	"testing"
	"time"

	"newsroom-cms/config"
	"newsroom-cms/repositories"
	"newsroom-cms/services"
	"newsroom-cms/testutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	mailer *testutil.RecordingMailer

	articles repositories.ArticleRepository
	users    repositories.UserRepository

	auth          services.AuthService
	user          services.UserService
	publisher     services.PublisherService
	article       services.ArticleService
	feed          services.FeedService
	notifications services.NotificationService
	approval      services.ApprovalService
	newsletter    services.NewsletterService
	category      services.CategoryService
	clients       services.ApiClientService
}

type envOption func(*envConfig)

type envConfig struct {
	workflow config.WorkflowConfig
	noMailer bool
}

func withoutMailer() envOption {
	return func(c *envConfig) { c.noMailer = true }
}

func withPublishOnApprove(v bool) envOption {
	return func(c *envConfig) { c.workflow.PublishOnApprove = v }
}

func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()
	cfg := envConfig{workflow: config.WorkflowConfig{PublishOnApprove: true}}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := testutil.NewDB(t)
	log := zap.NewNop()

	userRepo := repositories.NewUserRepository(db)
	publisherRepo := repositories.NewPublisherRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	imageRepo := repositories.NewArticleImageRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	e := &env{db: db, mailer: &testutil.RecordingMailer{}, articles: articleRepo, users: userRepo}

	var mail services.Mailer = e.mailer
	if cfg.noMailer {
		mail = nil
	}

	e.auth = services.NewAuthService(userRepo, config.JWTConfig{Secret: []byte("test-secret"), Expiration: time.Hour}, log)
	e.user = services.NewUserService(userRepo, publisherRepo, log)
	e.publisher = services.NewPublisherService(publisherRepo, userRepo, articleRepo, log)
	e.article = services.NewArticleService(articleRepo, imageRepo, categoryRepo, publisherRepo, userRepo, log)
	e.feed = services.NewFeedService(articleRepo, e.user)
	e.notifications = services.NewNotificationService(articleRepo, publisherRepo, userRepo, mail, "https://news.example.com", log)
	e.approval = services.NewApprovalService(articleRepo, e.notifications, cfg.workflow, log)
	e.newsletter = services.NewNewsletterService(repositories.NewNewsletterRepository(db), publisherRepo, log)
	e.category = services.NewCategoryService(categoryRepo)
	e.clients = services.NewApiClientService(repositories.NewApiClientRepository(db), log)
	return e
}
