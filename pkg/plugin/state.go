package plugin

// State is a Plugin's position in its lifecycle state machine.
type State int

const (
	// StateUnknown is the initial state before any query has succeeded.
	StateUnknown State = iota
	// StateQueried means info was extracted but the plugin is not loaded.
	StateQueried
	// StateRequery marks a previously seen file whose backend set has
	// changed since the last discovery pass, invalidating its entry.
	StateRequery
	// StateLoaded means load succeeded.
	StateLoaded
	// StateLoadFailed means the last load attempt (or a dependency
	// resolution it required) failed.
	StateLoadFailed
	// StateUnloadFailed means the last unload attempt failed.
	StateUnloadFailed
)

// String renders the state's wire name.
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateQueried:
		return "queried"
	case StateRequery:
		return "requery"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	case StateUnloadFailed:
		return "unload_failed"
	default:
		return "invalid"
	}
}

// validTransitions enumerates the lifecycle state machine. It is
// consulted only for documentation and validation; the Manager does not
// check it. The load/unload driver in manager.go starts a load from any
// state other than StateLoaded, and an unload veto moves a loaded plugin
// to StateLoadFailed, an edge this table does not list.
var validTransitions = map[State][]State{
	StateUnknown:      {StateQueried},
	StateQueried:      {StateLoaded, StateLoadFailed, StateRequery},
	StateLoadFailed:   {StateLoaded, StateLoadFailed},
	StateLoaded:       {StateQueried, StateUnloadFailed, StateRequery},
	StateRequery:      {StateQueried},
	StateUnloadFailed: {},
}

// IsValidTransition reports whether moving from one state to another is
// permitted by the state machine.
func IsValidTransition(from, to State) bool {
	for _, candidate := range validTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
