package world

import "maps"

// Status is the mutable per-run world state: variable values, opened doors
// and collected objects. It is rebuilt from the definition on every reset.
type Status struct {
	Variables   map[string]bool
	OpenedDoors map[string]bool
	Collected   map[string]bool
}

// NewStatus builds the baseline status of a definition.
func NewStatus(def *Definition) *Status {
	s := &Status{
		Variables:   make(map[string]bool, len(def.Variables)),
		OpenedDoors: make(map[string]bool),
		Collected:   make(map[string]bool),
	}
	for _, v := range def.Variables {
		s.Variables[v.ID] = v.Value
	}
	return s
}

// Clone returns an independent copy.
func (s *Status) Clone() *Status {
	return &Status{
		Variables:   cloneSet(s.Variables),
		OpenedDoors: cloneSet(s.OpenedDoors),
		Collected:   cloneSet(s.Collected),
	}
}

func cloneSet(m map[string]bool) map[string]bool {
	if m == nil {
		return make(map[string]bool)
	}
	return maps.Clone(m)
}
