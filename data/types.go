package data

import (
	"fmt"
	"strings"
)

// Section is a seed section referring to stations by name.
type Section struct {
	Up       string
	Down     string
	Distance int64
}

type Line struct {
	Name  string
	Color string
	// Sections are stored in no particular order, the same way the
	// database hands them back.
	Sections []Section
}

func (l Line) Repr() string {
	var sb strings.Builder
	sb.WriteString("Line{\n")
	sb.WriteString(fmt.Sprintf("\tName:  %q,\n", l.Name))
	sb.WriteString(fmt.Sprintf("\tColor: %q,\n", l.Color))
	for _, s := range l.Sections {
		sb.WriteString("\tSection{\n")
		sb.WriteString(fmt.Sprintf("\t\tUp:       %q,\n", s.Up))
		sb.WriteString(fmt.Sprintf("\t\tDown:     %q,\n", s.Down))
		sb.WriteString(fmt.Sprintf("\t\tDistance: %d,\n", s.Distance))
		sb.WriteString("\t},\n")
	}
	sb.WriteString("}\n")

	return sb.String()
}
