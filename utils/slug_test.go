package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugsOf(persisted ...string) ExistingSlugsFunc {
	return func(prefix string) ([]string, error) {
		var out []string
		for _, s := range persisted {
			if strings.HasPrefix(s, prefix) {
				out = append(out, s)
			}
		}
		return out, nil
	}
}

func TestUniqueSlugSimple(t *testing.T) {
	got, err := UniqueSlug("Canada", slugsOf(), nil)
	require.NoError(t, err)
	assert.Equal(t, "canada", got)
}

func TestUniqueSlugTransliterates(t *testing.T) {
	got, err := UniqueSlug("Côte d'Ivoire", slugsOf(), nil)
	require.NoError(t, err)
	assert.Equal(t, "cote-divoire", got)
}

func TestUniqueSlugCountsUpOnCollision(t *testing.T) {
	got, err := UniqueSlug("United States", slugsOf("united-states"), nil)
	require.NoError(t, err)
	assert.Equal(t, "united-states-1", got)

	got, err = UniqueSlug("United States", slugsOf("united-states", "united-states-1"), nil)
	require.NoError(t, err)
	assert.Equal(t, "united-states-2", got)
}

func TestUniqueSlugRespectsInFlight(t *testing.T) {
	inFlight := map[string]struct{}{}

	first, err := UniqueSlug("Dune", slugsOf(), inFlight)
	require.NoError(t, err)
	second, err := UniqueSlug("Dune", slugsOf(), inFlight)
	require.NoError(t, err)

	assert.Equal(t, "dune", first)
	assert.Equal(t, "dune-1", second)
	assert.Contains(t, inFlight, "dune")
	assert.Contains(t, inFlight, "dune-1")
}

func TestUniqueSlugEmptyFallsBackToUUID(t *testing.T) {
	got, err := UniqueSlug("!!!", slugsOf(), nil)
	require.NoError(t, err)
	_, parseErr := uuid.Parse(got)
	assert.NoError(t, parseErr)
}

func TestUniqueSlugTruncatesLongInput(t *testing.T) {
	got, err := UniqueSlug(strings.Repeat("long title ", 20), slugsOf(), nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), SlugMaxLength-slugCounterReserve)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestUniqueSlugTruncatedCollisionKeepsLengthBudget(t *testing.T) {
	long := strings.Repeat("a", 80)
	base, err := UniqueSlug(long, slugsOf(), nil)
	require.NoError(t, err)

	got, err := UniqueSlug(long, slugsOf(base), nil)
	require.NoError(t, err)
	assert.Equal(t, base+"-1", got)
	assert.LessOrEqual(t, len(got), SlugMaxLength)
}
