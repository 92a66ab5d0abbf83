package timesync

import (
	"context"
	"sync"
	"time"

	"github.com/paopaol/openPOWERLINK-V2/pkg/log"
)

// DefaultSyncQueueDepth is the default capacity of the local sync queue.
// Sync events are level-triggered; a slow consumer coalesces bursts
// rather than queueing them up.
const DefaultSyncQueueDepth = 1

// LocalOption configures a LocalTransport.
type LocalOption func(*LocalTransport)

// WithSyncQueueDepth sets the sync queue capacity.
func WithSyncQueueDepth(depth int) LocalOption {
	return func(t *LocalTransport) {
		if depth > 0 {
			t.depth = depth
		}
	}
}

// WithLocalTracer sets the trace capture logger for dropped sync events.
func WithLocalTracer(tracer log.Logger) LocalOption {
	return func(t *LocalTransport) {
		t.tracer = tracer
	}
}

// LocalTransport is the in-process CAL sync transport. The kernel side
// posts sync events with SendSyncEvent; the user side blocks in
// WaitSyncEvent. Forwarding starts disabled and is toggled by
// ControlSync.
type LocalTransport struct {
	depth  int
	tracer log.Logger

	mu      sync.Mutex
	enabled bool
	syncCh  chan struct{}
}

// NewLocalTransport creates a local sync transport.
func NewLocalTransport(opts ...LocalOption) *LocalTransport {
	t := &LocalTransport{
		depth:  DefaultSyncQueueDepth,
		tracer: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init prepares the sync queue. Forwarding remains disabled until the
// first ControlSync(true).
func (t *LocalTransport) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
	t.syncCh = make(chan struct{}, t.depth)
	return nil
}

// Exit disables forwarding and discards pending sync events.
func (t *LocalTransport) Exit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
	t.drainLocked()
}

// SendSyncEvent posts one sync event to the user side. With forwarding
// disabled the event is dropped and nil is returned. A full queue also
// drops: the consumer is still working on the previous cycle and sync
// events carry no payload to lose.
func (t *LocalTransport) SendSyncEvent() error {
	t.mu.Lock()
	enabled := t.enabled
	syncCh := t.syncCh
	t.mu.Unlock()

	if !enabled || syncCh == nil {
		t.traceDropped()
		return nil
	}

	select {
	case syncCh <- struct{}{}:
	default:
		t.traceDropped()
	}
	return nil
}

// ControlSync toggles sync forwarding. Disabling discards pending events
// so a consumer cannot observe a sync from before the toggle.
func (t *LocalTransport) ControlSync(enable bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enable
	if !enable {
		t.drainLocked()
	}
	return nil
}

// WaitSyncEvent blocks until the next sync event is forwarded or the
// context is done.
func (t *LocalTransport) WaitSyncEvent(ctx context.Context) error {
	t.mu.Lock()
	syncCh := t.syncCh
	t.mu.Unlock()

	if syncCh == nil {
		return context.Canceled
	}

	select {
	case <-syncCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *LocalTransport) drainLocked() {
	for {
		select {
		case <-t.syncCh:
		default:
			return
		}
	}
}

func (t *LocalTransport) traceDropped() {
	t.tracer.Log(log.Event{
		Timestamp: time.Now(),
		Source:    log.SourceTimesync,
		Sync:      &log.SyncEvent{Action: log.SyncDropped},
	})
}

// Compile-time interface satisfaction check.
var _ Transport = (*LocalTransport)(nil)
