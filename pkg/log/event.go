package log

import "time"

// Event represents one trace record captured by the kernel real-time core.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// InstanceID identifies the engine or dispatcher instance (UUID).
	InstanceID string `cbor:"2,keyasint"`

	// Source is the subsystem that produced the event.
	Source Source `cbor:"3,keyasint"`

	// Type-specific payload (one of these will be set).
	Timer *TimerEvent     `cbor:"4,keyasint,omitempty"` // Timer engine activity
	Sync  *SyncEvent      `cbor:"5,keyasint,omitempty"` // Timesync relay activity
	Error *ErrorEventData `cbor:"6,keyasint,omitempty"` // Errors in either subsystem
}

// Source indicates which subsystem captured the event.
type Source uint8

const (
	// SourceTimer is the high-resolution timer engine.
	SourceTimer Source = 0
	// SourceTimesync is the timesync dispatcher.
	SourceTimesync Source = 1
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceTimer:
		return "TIMER"
	case SourceTimesync:
		return "TIMESYNC"
	default:
		return "UNKNOWN"
	}
}

// TimerEvent captures timer engine activity for one slot.
type TimerEvent struct {
	// Action describes what happened to the slot.
	Action TimerAction `cbor:"1,keyasint"`

	// Slot is the slot index.
	Slot int `cbor:"2,keyasint"`

	// Generation is the slot's handle generation at capture time.
	Generation uint32 `cbor:"3,keyasint"`

	// Interval is the effective (post-clamp) interval in nanoseconds.
	// Zero for actions that carry no interval.
	Interval time.Duration `cbor:"4,keyasint,omitempty"`

	// Cyclic indicates a repeating timer.
	Cyclic bool `cbor:"5,keyasint,omitempty"`
}

// TimerAction describes timer slot activity.
type TimerAction uint8

const (
	// TimerArmed indicates a slot was armed or rearmed.
	TimerArmed TimerAction = 0
	// TimerFired indicates a callback was dispatched for a slot expiry.
	TimerFired TimerAction = 1
	// TimerDeleted indicates a slot was disarmed and freed.
	TimerDeleted TimerAction = 2
	// TimerStaleDrop indicates an expiry notification was discarded
	// because the slot no longer has a callback registered.
	TimerStaleDrop TimerAction = 3
)

// String returns the timer action name.
func (a TimerAction) String() string {
	switch a {
	case TimerArmed:
		return "ARMED"
	case TimerFired:
		return "FIRED"
	case TimerDeleted:
		return "DELETED"
	case TimerStaleDrop:
		return "STALE_DROP"
	default:
		return "UNKNOWN"
	}
}

// SyncEvent captures timesync relay activity.
type SyncEvent struct {
	// Action describes the relay activity.
	Action SyncAction `cbor:"1,keyasint"`

	// Enabled is the sync-enable flag (control actions only).
	Enabled bool `cbor:"2,keyasint,omitempty"`
}

// SyncAction describes timesync relay activity.
type SyncAction uint8

const (
	// SyncSent indicates a sync event was forwarded to the transport.
	SyncSent SyncAction = 0
	// SyncDropped indicates a sync event was discarded because
	// forwarding is disabled.
	SyncDropped SyncAction = 1
	// SyncControl indicates the enable flag was toggled.
	SyncControl SyncAction = 2
)

// String returns the sync action name.
func (a SyncAction) String() string {
	switch a {
	case SyncSent:
		return "SENT"
	case SyncDropped:
		return "DROPPED"
	case SyncControl:
		return "CONTROL"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors in either subsystem.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
