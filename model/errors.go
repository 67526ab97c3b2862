package model

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSection = errors.New("section has no UP/DOWN station")
	ErrInvalidTopology  = errors.New("line sections do not form a single path")
)

type MalformedSectionError struct {
	SectionID int64
	Missing   Direction
}

func (e *MalformedSectionError) Error() string {
	return fmt.Sprintf("section %d: %s (missing %s)", e.SectionID, ErrMalformedSection, e.Missing)
}

func (e *MalformedSectionError) Unwrap() error { return ErrMalformedSection }

// InvalidTopologyError means the edges branch, loop or fall apart into
// fragments. LineID is zero when the caller only had bare sections.
type InvalidTopologyError struct {
	LineID int64
	Reason string
}

func (e *InvalidTopologyError) Error() string {
	if e.LineID != 0 {
		return fmt.Sprintf("line %d: %s: %s", e.LineID, ErrInvalidTopology, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTopology, e.Reason)
}

func (e *InvalidTopologyError) Unwrap() error { return ErrInvalidTopology }
