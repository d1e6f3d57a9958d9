package services

import (
	"errors"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

// dbError maps a repository error to the typed errors handlers understand.
func dbError(err error, resource string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrorNotFound{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrorConflict{Message: resource + " already exists"}
	}
	if isTyped(err) {
		return err
	}
	return models.ErrorInternalServer{Err: err}
}

func isTyped(err error) bool {
	var (
		validation   models.ErrorValidation
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
		internal     models.ErrorInternalServer
	)
	return errors.As(err, &validation) ||
		errors.As(err, &unauthorized) ||
		errors.As(err, &forbidden) ||
		errors.As(err, &notFound) ||
		errors.As(err, &conflict) ||
		errors.As(err, &internal)
}

func forbidden(message string) error {
	return models.ErrorForbidden{Message: message}
}

// requireRole rejects actors that are anonymous, API clients or hold
// another role.
func requireRole(actor *models.Actor, roles ...models.Role) error {
	if actor == nil || actor.ViaAPIClient() {
		return forbidden("this action requires a signed-in user")
	}
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return forbidden("your role does not allow this action")
}
