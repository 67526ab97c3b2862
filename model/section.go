package model

// Edge is the (up, down) pair a single section represents.
type Edge struct {
	Up   Station
	Down Station
}

// UpAndDown picks the UP and DOWN tagged stations out of the section. The
// first association of each direction wins.
func (s Section) UpAndDown() (Edge, error) {
	var e Edge
	var hasUp, hasDown bool

	for _, ss := range s.Stations {
		switch {
		case ss.Direction == Up && !hasUp:
			e.Up, hasUp = ss.Station, true
		case ss.Direction == Down && !hasDown:
			e.Down, hasDown = ss.Station, true
		}
	}

	if !hasUp {
		return Edge{}, &MalformedSectionError{SectionID: s.ID, Missing: Up}
	}
	if !hasDown {
		return Edge{}, &MalformedSectionError{SectionID: s.ID, Missing: Down}
	}
	return e, nil
}
