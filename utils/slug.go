package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	// SlugMaxLength matches the slug column size on every entity table
	SlugMaxLength = 60
	// slugCounterReserve leaves room for a "-NNN" uniqueness suffix
	slugCounterReserve = 4
	// after this many collisions a random token is cheaper than counting on
	slugMaxAttempts = 1000
)

// ExistingSlugsFunc returns the persisted slugs that start with the given
// prefix. Repositories provide this as a bounded prefix scan.
type ExistingSlugsFunc func(prefix string) ([]string, error)

// UniqueSlug builds a URL-safe slug for value that collides neither with
// persisted slugs nor with inFlight, the slugs already allocated earlier in
// the same batch. The returned slug is registered in inFlight. Non-ASCII
// text is transliterated, the result is truncated to the column size minus
// the counter reserve, and an empty normalization falls back to a random
// UUID token.
func UniqueSlug(value string, existing ExistingSlugsFunc, inFlight map[string]struct{}) (string, error) {
	base := slug.Make(value)
	if len(base) > SlugMaxLength-slugCounterReserve {
		base = strings.TrimRight(base[:SlugMaxLength-slugCounterReserve], "-")
	}

	if base == "" {
		return claim(uuid.NewString(), inFlight), nil
	}

	persisted, err := existing(base)
	if err != nil {
		return "", fmt.Errorf("failed to scan existing slugs for %q: %w", base, err)
	}

	taken := make(map[string]struct{}, len(persisted))
	for _, s := range persisted {
		taken[s] = struct{}{}
	}

	isFree := func(candidate string) bool {
		if _, ok := taken[candidate]; ok {
			return false
		}
		if inFlight != nil {
			if _, ok := inFlight[candidate]; ok {
				return false
			}
		}
		return true
	}

	candidate := base
	for counter := 1; !isFree(candidate); counter++ {
		if counter == slugMaxAttempts {
			return claim(uuid.NewString(), inFlight), nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}

	return claim(candidate, inFlight), nil
}

func claim(slug string, inFlight map[string]struct{}) string {
	if inFlight != nil {
		inFlight[slug] = struct{}{}
	}
	return slug
}

