package routes

import (
	"net/http"

	"newsroom-cms/config"
	"newsroom-cms/handlers"
	"newsroom-cms/helper"
	"newsroom-cms/logger"
	"newsroom-cms/metrics"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/repositories"
	"newsroom-cms/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers over db. mail may
// be nil when no transport is configured.
func SetupRouter(db *gorm.DB, cfg *config.Config, log *zap.Logger, mail services.Mailer) *gin.Engine {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	publisherRepo := repositories.NewPublisherRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	imageRepo := repositories.NewArticleImageRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	newsletterRepo := repositories.NewNewsletterRepository(db)
	clientRepo := repositories.NewApiClientRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT, log)
	userService := services.NewUserService(userRepo, publisherRepo, log)
	publisherService := services.NewPublisherService(publisherRepo, userRepo, articleRepo, log)
	articleService := services.NewArticleService(articleRepo, imageRepo, categoryRepo, publisherRepo, userRepo, log)
	feedService := services.NewFeedService(articleRepo, userService)
	notificationService := services.NewNotificationService(articleRepo, publisherRepo, userRepo, mail, cfg.SiteURL, log)
	approvalService := services.NewApprovalService(articleRepo, notificationService, cfg.Workflow, log)
	categoryService := services.NewCategoryService(categoryRepo)
	newsletterService := services.NewNewsletterService(newsletterRepo, publisherRepo, log)
	clientService := services.NewApiClientService(clientRepo, log)

	// Initialize handlers
	h := helper.NewHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, h)
	userHandler := handlers.NewUserHandler(userService, feedService, h)
	articleHandler := handlers.NewArticleHandler(articleService, approvalService, cfg.SiteURL, h)
	feedHandler := handlers.NewFeedHandler(feedService, cfg.SiteURL, h)
	publisherHandler := handlers.NewPublisherHandler(publisherService, h)
	categoryHandler := handlers.NewCategoryHandler(categoryService, h)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService, h)
	clientHandler := handlers.NewApiClientHandler(clientService, h)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		cors.New(corsConfig(cfg.CORS)),
	)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authenticate(authService, clientService, h))

	// Subscribed feed, the only surface open to API keys
	feed := v1.Group("/feed/subscribed", middleware.RequireAuth(h))
	{
		feed.GET("", feedHandler.GetFeed)
		feed.GET("/:id", feedHandler.GetFeedArticle)
	}

	api := v1.Group("", middleware.RestrictAPIClients(h))

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public routes (published content only)
	api.GET("/articles", articleHandler.GetPublicArticles)
	api.GET("/articles/:id", articleHandler.GetPublicArticle)
	api.GET("/publishers", publisherHandler.GetPublishers)
	api.GET("/publishers/:id", publisherHandler.GetPublisher)
	api.GET("/publishers/:id/articles", articleHandler.GetPublisherArticles)
	api.GET("/journalists/:username/articles", articleHandler.GetJournalistArticles)
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)
	api.GET("/newsletters", newsletterHandler.GetNewsletters)
	api.GET("/newsletters/:id", newsletterHandler.GetNewsletter)

	// Protected routes
	protected := api.Group("", middleware.RequireAuth(h))
	{
		// Profile
		protected.GET("/profile", userHandler.GetProfile)
		protected.PUT("/profile", userHandler.UpdateProfile)
		protected.GET("/profile/roles", userHandler.GetRoles)
		protected.PUT("/users/:id/role", middleware.RequireRole(h, models.RoleEditor), userHandler.AssignRole)

		// Subscriptions
		protected.GET("/subscriptions", userHandler.GetSubscriptions)
		protected.POST("/publishers/:id/subscribe", userHandler.Subscribe)
		protected.DELETE("/publishers/:id/subscribe", userHandler.Unsubscribe)
		protected.POST("/journalists/:username/follow", userHandler.Follow)
		protected.DELETE("/journalists/:username/follow", userHandler.Unfollow)
		protected.GET("/my-feed", feedHandler.GetFeed)

		// Dashboards
		protected.GET("/dashboard/reader", userHandler.ReaderDashboard)
		protected.GET("/dashboard/journalist", articleHandler.JournalistDashboard)
		protected.GET("/publishers/:id/dashboard", publisherHandler.Dashboard)

		// Publishers
		protected.POST("/publishers", publisherHandler.CreatePublisher)
		protected.POST("/publishers/:id/journalists", publisherHandler.AffiliateJournalist)

		// Articles
		protected.POST("/articles", articleHandler.CreateArticle)
		protected.GET("/articles/:id/manage", articleHandler.GetManagedArticle)
		protected.PUT("/articles/:id/manage", articleHandler.UpdateArticle)
		protected.DELETE("/articles/:id/manage", articleHandler.DeleteArticle)
		protected.POST("/articles/:id/submit", articleHandler.SubmitArticle)
		protected.POST("/articles/:id/review", articleHandler.ReviewArticle)
		protected.POST("/articles/:id/publish", articleHandler.PublishArticle)
		protected.POST("/articles/:id/images", articleHandler.AddImage)

		// Categories
		protected.POST("/categories", categoryHandler.CreateCategory)

		// Newsletters
		protected.POST("/newsletters", newsletterHandler.CreateNewsletter)
		protected.PUT("/newsletters/:id", newsletterHandler.UpdateNewsletter)
		protected.POST("/newsletters/:id/publish", newsletterHandler.PublishNewsletter)

		// API clients
		protected.POST("/api-clients", clientHandler.CreateClient)
		protected.GET("/api-clients", clientHandler.GetClients)
		protected.DELETE("/api-clients/:id", clientHandler.DeactivateClient)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.APIKeyHeader)
	c.ExposeHeaders = []string{"X-Request-ID"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
