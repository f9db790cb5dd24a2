package params

import "time"

// ChangeKind identifies which aspect of a Parameter changed.
type ChangeKind int

const (
	// NameChanged signals the parameter was renamed.
	NameChanged ChangeKind = iota

	// ValueChanged signals the parameter received a new value.
	ValueChanged
)

// String provides a string representation of ChangeKind for logging and debugging.
func (k ChangeKind) String() string {
	switch k {
	case NameChanged:
		return "name-changed"
	case ValueChanged:
		return "value-changed"
	default:
		return "unknown"
	}
}

// ChangeEvent describes one mutation of a Parameter. It is built after the
// mutation is applied, so handlers observe the new state through Parameter.
//
// The event itself is an immutable value; the parameter it points at is not.
type ChangeEvent struct {
	parameter  *Parameter
	kind       ChangeKind
	occurredAt time.Time
}

// NewChangeEvent builds a ChangeEvent for the given parameter and kind,
// stamped with the current UTC time at microsecond precision.
func NewChangeEvent(parameter *Parameter, kind ChangeKind) ChangeEvent {
	return ChangeEvent{
		parameter:  parameter,
		kind:       kind,
		occurredAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// Parameter returns the parameter the change happened on.
func (e ChangeEvent) Parameter() *Parameter {
	return e.parameter
}

// Kind returns what kind of change occurred.
func (e ChangeEvent) Kind() ChangeKind {
	return e.kind
}

// OccurredAt returns when the change was recorded.
func (e ChangeEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// ParameterListener reacts to Parameter changes.
//
// Identifiers are not required to be unique; removal by identifier operates
// on every listener carrying it. Clone must return a deep copy, so owning
// parameters can duplicate their listeners.
//
// Notification methods return nothing: a listener deals with its own
// failures, the notifying parameter never does.
type ParameterListener interface {
	// ID returns the identifier used for grouped removal.
	ID() string

	// Clone returns a deep copy.
	Clone() ParameterListener

	// ParameterNameChanged is called after the parameter was renamed.
	ParameterNameChanged(event ChangeEvent)

	// ParameterValueChanged is called after the parameter received a new value.
	ParameterValueChanged(event ChangeEvent)
}
