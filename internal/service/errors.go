package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDestinationNotFound  = errors.New("destination not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrDistrictNotFound     = errors.New("district not found")
	ErrGalleryImageNotFound = errors.New("gallery image not found")

	ErrValidation           = errors.New("validation failed")
	ErrMainImageRequired    = fmt.Errorf("%w: main image is required", ErrValidation)
	ErrImageRequired        = fmt.Errorf("%w: image file is required", ErrValidation)
	ErrImageTooLarge        = errors.New("image exceeds maximum size")
	ErrImageUnsupportedType = errors.New("unsupported image content type")

	ErrSlugConflict = errors.New("slug already in use")
	ErrNameConflict = errors.New("name already in use")
	ErrEmailTaken   = errors.New("email already registered")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("staff privileges required")

	ErrStorageUnavailable = errors.New("image storage not configured")
)

func validationError(problems []string) error {
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
}
