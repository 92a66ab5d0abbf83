package event

// Type identifies the kind of a kernel event and thereby the module that
// consumes it.
type Type uint8

const (
	// TypeTimesyncControl enables or disables sync event forwarding.
	// Arg carries a bool.
	TypeTimesyncControl Type = iota

	// TypeNmtStateChange reports an NMT state transition.
	// Handled by the NMT module, not by this core.
	TypeNmtStateChange

	// TypeError reports an asynchronous stack error.
	TypeError
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case TypeTimesyncControl:
		return "TIMESYNC_CONTROL"
	case TypeNmtStateChange:
		return "NMT_STATE_CHANGE"
	case TypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is one kernel event. Arg is typed per Type; consumers must check
// the assertion and treat a mismatch as a misrouted event.
type Event struct {
	// Type selects the consuming module.
	Type Type

	// Arg is the type-specific payload.
	Arg any
}

// NewTimesyncControl builds a timesync control event.
func NewTimesyncControl(enable bool) Event {
	return Event{Type: TypeTimesyncControl, Arg: enable}
}

// BoolArg returns the payload as a bool. ok is false if the payload is not
// a bool.
func (e Event) BoolArg() (v, ok bool) {
	v, ok = e.Arg.(bool)
	return v, ok
}
