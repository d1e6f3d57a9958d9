package services

import (
	"context"
	"errors"
	"fmt"

	"newsroom-cms/models"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// createWithSlug runs create under an explicit slug, or under a generated
// one. A generated slug that loses a race on the unique index is
// regenerated once before the conflict is surfaced as retryable.
func createWithSlug(
	ctx context.Context,
	log *zap.Logger,
	resource, explicit string,
	generate func(context.Context) (string, error),
	create func(context.Context, string) error,
) error {
	if explicit != "" {
		if !slug.IsSlug(explicit) {
			return models.ErrorValidation{Field: "slug", Message: "must contain only lowercase letters, digits and hyphens"}
		}
		err := create(ctx, explicit)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrorConflict{Message: fmt.Sprintf("slug %q is already in use", explicit)}
		}
		return dbError(err, resource)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		generated, err := generate(ctx)
		if err != nil {
			return dbError(err, resource)
		}
		err = create(ctx, generated)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return dbError(err, resource)
		}
		log.Warn("slug collision", zap.String("resource", resource), zap.String("slug", generated), zap.Int("attempt", attempt))
	}
	return models.ErrorConflict{Message: "could not allocate a unique slug, please retry", Retryable: true}
}
