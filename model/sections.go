package model

import "fmt"

// Sections is the unordered set of sections a line is made of.
type Sections []Section

// Edges extracts the (up, down) pair of every section, in input order.
func (s Sections) Edges() ([]Edge, error) {
	edges := make([]Edge, 0, len(s))
	for _, sec := range s {
		e, err := sec.UpAndDown()
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// Ordered returns the stations in ascending order, see OrderEdges.
func (s Sections) Ordered() ([]Station, error) {
	edges, err := s.Edges()
	if err != nil {
		return nil, err
	}
	return OrderEdges(edges)
}

// OrderedStations is Sections(sections).Ordered.
func OrderedStations(sections []Section) ([]Station, error) {
	return Sections(sections).Ordered()
}

// OrderEdges rebuilds the single path described by an unordered set of
// directed edges. The walk starts from the first edge, goes upstream from its
// up station until the upper terminus, then downstream from its down station
// until the lower terminus.
//
// The caller must hand in a consistent snapshot. If the edges do not form
// exactly one simple path, an *InvalidTopologyError is returned and nothing
// is repaired.
//
// The returned slice is freshly allocated and owned by the caller.
func OrderEdges(edges []Edge) ([]Station, error) {
	if len(edges) == 0 {
		return []Station{}, nil
	}

	byUp := make(map[int64]Edge, len(edges))
	byDown := make(map[int64]Edge, len(edges))
	for _, e := range edges {
		if _, dup := byUp[e.Up.ID]; dup {
			return nil, &InvalidTopologyError{Reason: fmt.Sprintf("station %d leaves on more than one section", e.Up.ID)}
		}
		if _, dup := byDown[e.Down.ID]; dup {
			return nil, &InvalidTopologyError{Reason: fmt.Sprintf("station %d is entered by more than one section", e.Down.ID)}
		}
		byUp[e.Up.ID] = e
		byDown[e.Down.ID] = e
	}

	// a simple path over n edges visits exactly n+1 stations
	limit := len(edges) + 1
	seed := edges[0]

	upper := []Station{seed.Up}
	for frontier := seed.Up; ; {
		e, ok := byDown[frontier.ID]
		if !ok {
			break
		}
		upper = append(upper, e.Up)
		if len(upper) > limit {
			return nil, cycleError()
		}
		frontier = e.Up
	}

	out := make([]Station, 0, limit)
	for i := len(upper) - 1; i >= 0; i-- {
		out = append(out, upper[i])
	}

	out = append(out, seed.Down)
	for frontier := seed.Down; ; {
		e, ok := byUp[frontier.ID]
		if !ok {
			break
		}
		out = append(out, e.Down)
		if len(out) > limit {
			return nil, cycleError()
		}
		frontier = e.Down
	}

	if len(out) != limit {
		return nil, &InvalidTopologyError{
			Reason: fmt.Sprintf("walk reached %d of %d stations", len(out), limit),
		}
	}

	return out, nil
}

func cycleError() error {
	return &InvalidTopologyError{Reason: "walk did not reach a terminus"}
}
