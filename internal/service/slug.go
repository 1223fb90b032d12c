package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/slug"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const (
	maxBaseSlugLength = 200
	// maxSlugRaceRetries bounds how often an insert may lose the slug to a concurrent writer.
	maxSlugRaceRetries = 5
)

var slugAllowed = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type slugExistsFunc func(ctx context.Context, slug string) (bool, error)

// baseSlug derives the URL-safe stem for name, falling back to kind when name has no usable characters.
func baseSlug(name, kind string) string {
	base := slug.Make(name)
	if len(base) > maxBaseSlugLength {
		base = strings.TrimRight(base[:maxBaseSlugLength], "-")
	}
	if base == "" {
		return kind
	}
	return base
}

func slugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// insertWithSlug walks base, base-1, base-2, ... until exists reports a free slug,
// then hands it to insert. When insert loses the slug to a concurrent writer the
// walk resumes after the contested candidate.
func insertWithSlug[T any](ctx context.Context, base string, exists slugExistsFunc, insert func(slug string) (*T, error)) (*T, error) {
	n := 0
	for races := 0; races <= maxSlugRaceRetries; {
		candidate := slugCandidate(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if taken {
			n++
			continue
		}

		created, err := insert(candidate)
		if err == nil {
			return created, nil
		}
		if !isSlugViolation(err) {
			return nil, err
		}
		races++
		n++
	}
	return nil, fmt.Errorf("%w: gave up allocating slug for %q", ErrSlugConflict, base)
}

// insertWithExplicitSlug stores a caller-chosen slug without disambiguation.
func insertWithExplicitSlug[T any](ctx context.Context, value string, exists slugExistsFunc, insert func(slug string) (*T, error)) (*T, error) {
	taken, err := exists(ctx, value)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrSlugConflict, value)
	}
	created, err := insert(value)
	if isSlugViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrSlugConflict, value)
	}
	return created, err
}

func isSlugViolation(err error) bool {
	var violation *ports.UniqueViolation
	return errors.As(err, &violation) && strings.HasSuffix(violation.Constraint, "_slug_key")
}

func isNameViolation(err error) bool {
	var violation *ports.UniqueViolation
	return errors.As(err, &violation) && strings.HasSuffix(violation.Constraint, "_name_key")
}

// checkExplicitSlug trims a supplied slug and reports whether one was given.
func checkExplicitSlug(value *string, problems *[]string) (string, bool) {
	if value == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", false
	}
	if !slugAllowed.MatchString(trimmed) {
		*problems = append(*problems, "slug must contain lowercase letters, numbers, and hyphens only")
	}
	if len(trimmed) > 255 {
		*problems = append(*problems, "slug must be at most 255 characters")
	}
	return trimmed, true
}
