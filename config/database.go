package config

import (
	"fmt"

	"newsroom-cms/logger"
	"newsroom-cms/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB connects to postgres and migrates the schema.
func InitDB(cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GormConfig is shared by the server and the test databases so that
// duplicate-key errors surface as gorm.ErrDuplicatedKey everywhere.
func GormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		// articles.lead_image_id and article_images.article_id reference each other.
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: logger.NewGormLogger(log, gormlogger.Warn),
	}
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Publisher{},
		&models.Category{},
		&models.Article{},
		&models.ArticleImage{},
		&models.Newsletter{},
		&models.ApiClient{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
