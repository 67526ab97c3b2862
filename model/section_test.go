package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_UpAndDown(t *testing.T) {
	s := Section{
		ID: 3,
		Stations: []SectionStation{
			{Direction: Down, Station: yeoksam},
			{Direction: Up, Station: gangnam},
		},
	}

	e, err := s.UpAndDown()
	require.NoError(t, err)
	assert.Equal(t, Edge{Up: gangnam, Down: yeoksam}, e)
}

func TestSection_UpAndDown_Missing(t *testing.T) {
	tests := []struct {
		name     string
		stations []SectionStation
		missing  Direction
	}{
		{"no stations", nil, Up},
		{"only down", []SectionStation{{Direction: Down, Station: yeoksam}}, Up},
		{"only up", []SectionStation{{Direction: Up, Station: gangnam}}, Down},
		{"two ups", []SectionStation{{Direction: Up, Station: gangnam}, {Direction: Up, Station: yeoksam}}, Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Section{ID: 9, Stations: tt.stations}.UpAndDown()
			require.ErrorIs(t, err, ErrMalformedSection)

			var mse *MalformedSectionError
			require.ErrorAs(t, err, &mse)
			assert.Equal(t, int64(9), mse.SectionID)
			assert.Equal(t, tt.missing, mse.Missing)
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{Up, Down} {
		got, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	_, ok := ParseDirection("SIDEWAYS")
	assert.False(t, ok)
}
