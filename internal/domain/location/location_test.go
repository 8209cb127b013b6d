package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/location"
)

func TestParse_Workspace(t *testing.T) {
	loc, err := location.Parse("workspace", 8)
	require.NoError(t, err)
	assert.Equal(t, entity.LocationTypeWorkspace, loc.Type)
	assert.Zero(t, loc.Number)
	assert.Empty(t, loc.Position)
}

func TestParse_Cabinet(t *testing.T) {
	loc, err := location.Parse("cabinet-3-upper", 8)
	require.NoError(t, err)
	assert.Equal(t, entity.LocationTypeCabinet, loc.Type)
	assert.Equal(t, 3, loc.Number)
	assert.Equal(t, entity.CabinetPositionUpper, loc.Position)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"unknown literal", "shelf"},
		{"missing parts", "cabinet-3"},
		{"extra parts", "cabinet-3-upper-x"},
		{"bad number", "cabinet-abc-upper"},
		{"zero number", "cabinet-0-upper"},
		{"negative number", "cabinet--1-upper"},
		{"out of range", "cabinet-9-upper"},
		{"bad position", "cabinet-3-middle"},
		{"wrong prefix", "locker-3-upper"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := location.Parse(tc.raw, 8)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Encoding and decoding must be inverses for every valid state.
func TestRoundTrip(t *testing.T) {
	valid := []string{"workspace", "cabinet-1-upper", "cabinet-1-lower", "cabinet-8-upper", "cabinet-8-lower"}
	for _, raw := range valid {
		loc, err := location.Parse(raw, 8)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, loc.String())
	}
}

func TestApply_ClearsCabinetFieldsForWorkspace(t *testing.T) {
	item := &entity.StockItem{
		LocationType:     entity.LocationTypeCabinet,
		LocationNumber:   4,
		LocationPosition: entity.CabinetPositionLower,
	}
	loc, err := location.Parse("workspace", 8)
	require.NoError(t, err)
	loc.Apply(item)

	assert.Equal(t, entity.LocationTypeWorkspace, item.LocationType)
	assert.Zero(t, item.LocationNumber)
	assert.Empty(t, item.LocationPosition)
}
