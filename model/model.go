package model

import (
	"errors"
	"strconv"
)

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDirection is the inverse of Direction.String, used when reading tagged
// associations back from storage.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "UP":
		return Up, true
	case "DOWN":
		return Down, true
	}
	return 0, false
}

type Station struct {
	ID   int64
	Name string
}

// SectionStation ties one station to a section with its direction tag.
type SectionStation struct {
	Direction Direction
	Station   Station
}

type Section struct {
	ID       int64
	LineID   int64
	Distance int64
	Stations []SectionStation
}

// NewSection builds a well formed section from its two endpoints.
func NewSection(id, lineID int64, up, down Station, distance int64) Section {
	return Section{
		ID:       id,
		LineID:   lineID,
		Distance: distance,
		Stations: []SectionStation{
			{Direction: Up, Station: up},
			{Direction: Down, Station: down},
		},
	}
}

type Line struct {
	ID       int64
	Name     string
	Color    string
	Sections Sections
}

// OrderedStations returns the line's stations from the upper terminus to the
// lower terminus.
func (l Line) OrderedStations() ([]Station, error) {
	stations, err := l.Sections.Ordered()
	if err != nil {
		var topo *InvalidTopologyError
		if errors.As(err, &topo) {
			topo.LineID = l.ID
		}
		return nil, err
	}
	return stations, nil
}
