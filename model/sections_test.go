package model

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gangnam   = Station{ID: 1, Name: "Gangnam"}
	yeoksam   = Station{ID: 2, Name: "Yeoksam"}
	seolleung = Station{ID: 3, Name: "Seolleung"}
	samseong  = Station{ID: 4, Name: "Samseong"}
	jamsil    = Station{ID: 5, Name: "Jamsil"}
)

func sectionsOf(edges ...Edge) []Section {
	out := make([]Section, len(edges))
	for i, e := range edges {
		out[i] = NewSection(int64(i+1), 1, e.Up, e.Down, 10)
	}
	return out
}

func TestOrderedStations_Empty(t *testing.T) {
	got, err := OrderedStations(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOrderedStations_Scenarios(t *testing.T) {
	a := Station{ID: 10, Name: "A"}
	b := Station{ID: 11, Name: "B"}
	c := Station{ID: 12, Name: "C"}
	d := Station{ID: 13, Name: "D"}

	tests := []struct {
		name  string
		edges []Edge
		want  []Station
	}{
		{
			name:  "single section",
			edges: []Edge{{gangnam, yeoksam}},
			want:  []Station{gangnam, yeoksam},
		},
		{
			name:  "two sections in order",
			edges: []Edge{{gangnam, yeoksam}, {yeoksam, seolleung}},
			want:  []Station{gangnam, yeoksam, seolleung},
		},
		{
			name:  "two sections reversed",
			edges: []Edge{{yeoksam, seolleung}, {gangnam, yeoksam}},
			want:  []Station{gangnam, yeoksam, seolleung},
		},
		{
			name:  "seed in the middle",
			edges: []Edge{{b, c}, {a, b}, {c, d}},
			want:  []Station{a, b, c, d},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderedStations(sectionsOf(tt.edges...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderedStations_PermutationInvariant(t *testing.T) {
	path := []Station{gangnam, yeoksam, seolleung, samseong, jamsil}
	var edges []Edge
	for i := 0; i+1 < len(path); i++ {
		edges = append(edges, Edge{path[i], path[i+1]})
	}

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]Edge(nil), edges...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := OrderEdges(shuffled)
		require.NoError(t, err)
		require.Equal(t, path, got, "input order %v", shuffled)
		checkPathProperties(t, shuffled, got)
	}
}

// checkPathProperties verifies completeness, endpoints and adjacency of a
// reconstructed order against its input edges.
func checkPathProperties(t *testing.T, edges []Edge, got []Station) {
	t.Helper()

	require.Len(t, got, len(edges)+1)

	seen := make(map[int64]bool)
	for _, s := range got {
		assert.False(t, seen[s.ID], "duplicate station %v", s)
		seen[s.ID] = true
	}

	adjacent := make(map[[2]int64]bool)
	for _, e := range edges {
		adjacent[[2]int64{e.Up.ID, e.Down.ID}] = true
		assert.NotEqual(t, got[0].ID, e.Down.ID, "first station is a down station")
		assert.NotEqual(t, got[len(got)-1].ID, e.Up.ID, "last station is an up station")
	}
	for i := 0; i+1 < len(got); i++ {
		assert.True(t, adjacent[[2]int64{got[i].ID, got[i+1].ID}], "no edge %v -> %v", got[i], got[i+1])
	}
}

func TestOrderedStations_InvalidTopology(t *testing.T) {
	a := Station{ID: 10, Name: "A"}
	b := Station{ID: 11, Name: "B"}
	c := Station{ID: 12, Name: "C"}
	d := Station{ID: 13, Name: "D"}

	tests := []struct {
		name  string
		edges []Edge
	}{
		{"branch on up station", []Edge{{a, b}, {a, c}}},
		{"branch on down station", []Edge{{a, c}, {b, c}}},
		{"two station cycle", []Edge{{a, b}, {b, a}}},
		{"three station cycle", []Edge{{a, b}, {b, c}, {c, a}}},
		{"self loop", []Edge{{a, a}}},
		{"disconnected fragments", []Edge{{a, b}, {c, d}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderedStations(sectionsOf(tt.edges...))
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTopology), "got %v", err)

			var topo *InvalidTopologyError
			assert.ErrorAs(t, err, &topo)
		})
	}
}

func TestOrderedStations_DoesNotAliasInput(t *testing.T) {
	sections := sectionsOf(Edge{gangnam, yeoksam}, Edge{yeoksam, seolleung})

	got, err := OrderedStations(sections)
	require.NoError(t, err)
	got[0].Name = "changed"

	again, err := OrderedStations(sections)
	require.NoError(t, err)
	assert.Equal(t, "Gangnam", again[0].Name)
}

func TestLine_OrderedStations_TagsLineID(t *testing.T) {
	a := Station{ID: 10, Name: "A"}
	l := Line{
		ID:       7,
		Name:     "Sinbundang",
		Sections: sectionsOf(Edge{a, yeoksam}, Edge{a, gangnam}),
	}

	_, err := l.OrderedStations()
	var topo *InvalidTopologyError
	require.ErrorAs(t, err, &topo)
	assert.Equal(t, int64(7), topo.LineID)
	assert.Contains(t, err.Error(), "line 7")
}

func TestLine_OrderedStations_MalformedSection(t *testing.T) {
	l := Line{
		ID: 1,
		Sections: Sections{
			NewSection(1, 1, gangnam, yeoksam, 5),
			{ID: 2, LineID: 1, Distance: 5, Stations: []SectionStation{{Direction: Up, Station: yeoksam}}},
		},
	}

	_, err := l.OrderedStations()
	require.ErrorIs(t, err, ErrMalformedSection)
}
