// Package modes models the read-only mode context reported by the dictation
// engine at phrase boundaries.
//
// A [Set] is an immutable snapshot of the engine's active mode names taken at
// one phrase boundary. The coordinator only ever inspects it; it never owns or
// mutates engine mode state.
package modes

import "sort"

// Sleep is the mode name the dictation engine reports while dictation is
// suspended. While asleep the engine still fires phrase callbacks for the
// wake phrase itself, so downstream consumers must gate on it explicitly.
const Sleep = "sleep"

// Set is an immutable snapshot of active mode names. The zero value is an
// empty set.
type Set struct {
	names map[string]struct{}
}

// New builds a [Set] from the given mode names. Duplicates are collapsed.
func New(names ...string) Set {
	if len(names) == 0 {
		return Set{}
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return Set{names: m}
}

// Contains reports whether name is an active mode.
func (s Set) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Sleeping reports whether the [Sleep] mode is active.
func (s Set) Sleeping() bool {
	return s.Contains(Sleep)
}

// Names returns the active mode names in sorted order, for logging.
func (s Set) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
