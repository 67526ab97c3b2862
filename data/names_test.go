package data

import (
	"testing"

	"go.lepak.sg/subway-backend/model"
)

// Every seed line must describe a single path, otherwise seeding a fresh
// database produces lines the API cannot render.
func Test_SeedLinesAreSinglePaths(t *testing.T) {
	names := GetNames()
	ids := make(map[string]int64, len(names))
	for i, n := range names {
		ids[n] = int64(i + 1)
	}

	for _, l := range GetLines() {
		var sections model.Sections
		for i, s := range l.Sections {
			if s.Distance <= 0 {
				t.Errorf("%s: section %d has distance %d", l.Name, i, s.Distance)
			}
			up := model.Station{ID: ids[s.Up], Name: s.Up}
			down := model.Station{ID: ids[s.Down], Name: s.Down}
			sections = append(sections, model.NewSection(int64(i+1), 1, up, down, s.Distance))
		}

		stations, err := sections.Ordered()
		if err != nil {
			t.Errorf("%s: %v\n%s", l.Name, err, l.Repr())
			continue
		}
		if len(stations) != len(l.Sections)+1 {
			t.Errorf("%s: expected %d stations, got %d", l.Name, len(l.Sections)+1, len(stations))
		}
	}
}

func Test_GetNamesUnique(t *testing.T) {
	names := GetNames()
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q", n)
		}
		seen[n] = true
	}

	if !seen["Gangnam"] {
		t.Errorf("expected interchange Gangnam in names")
	}
}
