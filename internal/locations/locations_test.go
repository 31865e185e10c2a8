package locations_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/locations"
)

func TestDefault_ResolvesKnownCities(t *testing.T) {
	table := locations.Default()

	for _, input := range []string{"Paris", "  paris ", "PARIS, France"} {
		loc, err := table.Resolve(input)
		require.NoError(t, err, input)
		assert.Equal(t, "187147", loc.ID, input)
	}
}

func TestDefault_ResolvesAliases(t *testing.T) {
	loc, err := locations.Default().Resolve("NYC")

	require.NoError(t, err)
	assert.Equal(t, "new york", loc.Name)
}

// TestResolve_UnknownCityListsSupported checks that an unknown city is
// rejected with the full supported set so the user can pick a valid one.
func TestResolve_UnknownCityListsSupported(t *testing.T) {
	table := locations.Default()

	_, err := table.Resolve("Nowhereland")

	require.ErrorIs(t, err, domain.ErrUnsupportedInput)
	var ue *domain.UnsupportedInputError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Nowhereland", ue.Input)
	assert.Equal(t, table.Supported(), ue.Supported)
	assert.Contains(t, ue.Supported, "paris")
	assert.IsIncreasing(t, ue.Supported)
}

func TestParse_RejectsDuplicates(t *testing.T) {
	_, err := locations.Parse([]byte("locations:\n  - {name: Paris, id: '1'}\n  - {name: paris, id: '2'}\n"))

	assert.ErrorContains(t, err, "duplicate")
}

func TestParse_RejectsMissingID(t *testing.T) {
	_, err := locations.Parse([]byte("locations:\n  - {name: Paris}\n"))

	assert.Error(t, err)
}
