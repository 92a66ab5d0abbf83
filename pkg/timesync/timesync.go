package timesync

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paopaol/openPOWERLINK-V2/pkg/event"
	"github.com/paopaol/openPOWERLINK-V2/pkg/log"
)

// Dispatcher errors.
var (
	// ErrInvalidEvent indicates an event of a type the timesync module
	// does not handle was routed here.
	ErrInvalidEvent = errors.New("event not handled by timesync module")
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTracer sets the trace capture logger. Defaults to no tracing.
func WithTracer(tracer log.Logger) Option {
	return func(d *Dispatcher) {
		d.tracer = tracer
	}
}

// Dispatcher relays sync notifications from the kernel cyclic engine to
// the user side through a Transport, and consumes timesync control events
// from the kernel event queue.
type Dispatcher struct {
	transport Transport
	id        string
	logger    *slog.Logger
	tracer    log.Logger
}

// New creates a dispatcher over the given transport.
func New(transport Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		id:        uuid.NewString(),
		logger:    slog.Default(),
		tracer:    log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the dispatcher instance identifier used in trace events.
func (d *Dispatcher) ID() string {
	return d.id
}

// Init initializes the underlying transport.
func (d *Dispatcher) Init() error {
	return d.transport.Init()
}

// Exit tears the underlying transport down.
func (d *Dispatcher) Exit() {
	d.transport.Exit()
}

// SendSyncEvent relays one cycle-boundary notification to the user side.
// Called once per network cycle by the cyclic engine.
func (d *Dispatcher) SendSyncEvent() error {
	if err := d.transport.SendSyncEvent(); err != nil {
		return err
	}
	d.trace(log.SyncEvent{Action: log.SyncSent})
	return nil
}

// Process consumes one kernel event routed to the timesync module.
// Timesync control events toggle sync forwarding on the transport; any
// other event type is a routing bug upstream and yields ErrInvalidEvent
// without touching sync state.
func (d *Dispatcher) Process(ev event.Event) error {
	switch ev.Type {
	case event.TypeTimesyncControl:
		enable, ok := ev.BoolArg()
		if !ok {
			return fmt.Errorf("%w: control payload %T, want bool", ErrInvalidEvent, ev.Arg)
		}
		if err := d.transport.ControlSync(enable); err != nil {
			return err
		}
		d.logger.Info("sync forwarding toggled", "id", d.id, "enabled", enable)
		d.trace(log.SyncEvent{Action: log.SyncControl, Enabled: enable})
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrInvalidEvent, ev.Type)
	}
}

func (d *Dispatcher) trace(ev log.SyncEvent) {
	d.tracer.Log(log.Event{
		Timestamp:  time.Now(),
		InstanceID: d.id,
		Source:     log.SourceTimesync,
		Sync:       &ev,
	})
}
