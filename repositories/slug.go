package repositories

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// uniqueSlug derives a slug from title and appends -1, -2, ... until no row
// of model uses it. Soft-deleted rows still hold their slug in the unique
// index, so they are counted too.
func uniqueSlug(ctx context.Context, db *gorm.DB, model any, title, fallback string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fallback
	}
	candidate := base
	for counter := 1; ; counter++ {
		var count int64
		err := db.WithContext(ctx).Unscoped().Model(model).Where("slug = ?", candidate).Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
