package data

import "sort"

// GetNames returns every station name used by the seed lines, sorted.
func GetNames() []string {
	nameSet := make(map[string]struct{})

	for _, l := range GetLines() {
		for _, s := range l.Sections {
			nameSet[s.Up] = struct{}{}
			nameSet[s.Down] = struct{}{}
		}
	}

	var names []string
	for k := range nameSet {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}

func GetLines() []Line {
	return []Line{Sinbundang, Line2}
}
