package hrestimer

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paopaol/openPOWERLINK-V2/pkg/log"
)

// Timer engine constants.
const (
	// DefaultTimerCount is the number of concurrently schedulable timers.
	// The cyclic engine needs two: cycle timeout and slot timeout.
	DefaultTimerCount = 2

	// MinIntervalOneShot is the minimum interval for one-shot timers.
	MinIntervalOneShot = 20 * time.Microsecond

	// MinIntervalCyclic is the minimum interval for cyclic timers.
	MinIntervalCyclic = 100 * time.Microsecond

	// DefaultDispatchPriority is the default SCHED_FIFO priority for the
	// dispatch goroutine's thread.
	DefaultDispatchPriority = 80

	// DefaultQueueDepth is the default capacity of the expiry queue.
	DefaultQueueDepth = 16
)

// Timer engine errors.
var (
	// ErrInvalidHandle indicates a handle whose slot index is out of range
	// or a nil handle reference.
	ErrInvalidHandle = errors.New("invalid timer handle")

	// ErrNoFreeSlot indicates all timer slots are occupied.
	ErrNoFreeSlot = errors.New("no free timer slot")

	// ErrResourceExhausted indicates a platform timer could not be created.
	ErrResourceExhausted = errors.New("platform timer resources exhausted")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("timer engine already started")

	// ErrNotStarted indicates the engine is not running.
	ErrNotStarted = errors.New("timer engine not started")
)

// EventArg is the argument passed to a timer callback.
type EventArg struct {
	// Handle is the slot's handle at dispatch time. A consumer that has
	// reconfigured the timer since arming compares this against its own
	// handle and discards the firing on mismatch.
	Handle Handle

	// Arg is the caller-supplied argument word from ModifyTimer.
	Arg uint32
}

// Callback is invoked on timer expiry, always from the engine's single
// dispatch goroutine. Callbacks across all slots are serialized; a slow
// callback delays every other timer.
type Callback func(arg EventArg)

// Config holds timer engine configuration.
type Config struct {
	// TimerCount is the number of timer slots.
	TimerCount int

	// DispatchPriority is the SCHED_FIFO priority for the dispatch thread.
	DispatchPriority int

	// QueueDepth is the capacity of the expiry notification queue.
	QueueDepth int
}

// DefaultConfig returns the default timer engine configuration.
func DefaultConfig() Config {
	return Config{
		TimerCount:       DefaultTimerCount,
		DispatchPriority: DefaultDispatchPriority,
		QueueDepth:       DefaultQueueDepth,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer sets the trace capture logger. Defaults to no tracing.
func WithTracer(tracer log.Logger) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// slot is one timer slot. All fields are guarded by the engine mutex.
type slot struct {
	handle   Handle
	callback Callback
	arg      uint32
	cyclic   bool
	interval time.Duration
	timer    platformTimer
}

// expiry is one notification from a platform timer to the dispatch
// goroutine.
type expiry struct {
	slot       int
	generation uint32
}

// Engine is the high-resolution timer engine. One engine owns its slots
// and their platform timers exclusively; callers interact through opaque
// handles only.
type Engine struct {
	cfg    Config
	id     string
	logger *slog.Logger
	tracer log.Logger
	driver timerDriver

	mu      sync.Mutex
	slots   []slot
	started bool
	stopped bool

	expiryCh chan expiry
	stopCh   chan struct{}
	done     chan struct{}
}

// New creates a timer engine. Zero config fields fall back to defaults.
// The engine does not own any platform resources until Start.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.TimerCount <= 0 {
		cfg.TimerCount = DefaultTimerCount
	}
	if cfg.DispatchPriority <= 0 {
		cfg.DispatchPriority = DefaultDispatchPriority
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}

	e := &Engine{
		cfg:    cfg,
		id:     uuid.NewString(),
		logger: slog.Default(),
		tracer: log.NoopLogger{},
		driver: monotonicDriver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the engine instance identifier used in trace events.
func (e *Engine) ID() string {
	return e.id
}

// Start creates the platform timer for every slot and starts the dispatch
// goroutine. Returns ErrResourceExhausted if a platform timer cannot be
// created; in that case already-created timers are released again. A
// failed priority raise is logged and is not an error.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}

	e.slots = make([]slot, e.cfg.TimerCount)
	for i := range e.slots {
		index := i
		t, err := e.driver.create(func() { e.slotFired(index) })
		if err != nil {
			for j := 0; j < i; j++ {
				e.slots[j].timer.destroy()
			}
			e.slots = nil
			e.logger.Error("platform timer creation failed",
				"slot", i, "err", err)
			return ErrResourceExhausted
		}
		e.slots[i].timer = t
	}

	e.expiryCh = make(chan expiry, e.cfg.QueueDepth)
	e.stopCh = make(chan struct{})
	e.done = make(chan struct{})
	e.started = true

	go e.dispatchLoop()

	e.logger.Info("timer engine started",
		"id", e.id, "slots", e.cfg.TimerCount)
	return nil
}

// Stop destroys all platform timers, clears all slots and joins the
// dispatch goroutine. Callbacks already dequeued may still complete before
// Stop returns.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return ErrNotStarted
	}
	if e.stopped {
		e.mu.Unlock()
		return nil
	}
	e.stopped = true

	for i := range e.slots {
		e.slots[i].timer.destroy()
		e.slots[i].handle = Handle{}
		e.slots[i].callback = nil
		e.slots[i].arg = 0
		e.slots[i].cyclic = false
		e.slots[i].interval = 0
	}
	e.mu.Unlock()

	close(e.stopCh)
	<-e.done

	e.logger.Info("timer engine stopped", "id", e.id)
	return nil
}

// ModifyTimer arms or rearms a timer. If *handle is the zero Handle, a
// free slot is allocated; otherwise the handle's slot is reconfigured.
// interval is clamped upward to MinIntervalOneShot or MinIntervalCyclic.
// On success *handle is updated to the new configuration's handle.
//
// The slot's handle is advanced before the platform timer is rearmed: if
// the previous configuration expires concurrently with this call, the
// dispatched argument already carries the new handle and the consumer can
// discard the firing by comparison.
func (e *Engine) ModifyTimer(handle *Handle, interval time.Duration,
	callback Callback, arg uint32, cyclic bool) error {

	if handle == nil {
		return ErrInvalidHandle
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var index int
	if handle.IsZero() {
		// No timer created yet - search for a free slot.
		index = -1
		for i := range e.slots {
			if e.slots[i].handle.IsZero() {
				index = i
				break
			}
		}
		if index < 0 {
			return ErrNoFreeSlot
		}
	} else {
		index = handle.Index()
		if index < 0 || index >= len(e.slots) {
			return ErrInvalidHandle
		}
	}
	s := &e.slots[index]

	if cyclic {
		if interval < MinIntervalCyclic {
			interval = MinIntervalCyclic
		}
	} else {
		if interval < MinIntervalOneShot {
			interval = MinIntervalOneShot
		}
	}

	// Advance the handle before rearming. A late expiry of the previous
	// configuration now delivers the new handle, which the consumer
	// detects as not its own and discards.
	s.handle = s.handle.next(index)
	*handle = s.handle

	s.callback = callback
	s.arg = arg
	s.cyclic = cyclic
	s.interval = interval

	var period time.Duration
	if cyclic {
		period = interval
	}
	s.timer.arm(interval, period)

	e.trace(log.TimerEvent{
		Action:     log.TimerArmed,
		Slot:       index,
		Generation: s.handle.Generation(),
		Interval:   interval,
		Cyclic:     cyclic,
	})
	return nil
}

// DeleteTimer disarms a timer and frees its slot. A zero *handle is a
// no-op. A stale handle (slot since reconfigured) is treated as already
// deleted and is not an error. On return *handle is reset to the zero
// Handle.
func (e *Engine) DeleteTimer(handle *Handle) error {
	if handle == nil {
		return ErrInvalidHandle
	}
	if handle.IsZero() {
		return nil
	}

	index := handle.Index()

	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.slots) {
		return ErrInvalidHandle
	}
	s := &e.slots[index]

	if s.handle != *handle {
		// Slot was reconfigured or already deleted under this handle.
		*handle = Handle{}
		return nil
	}

	generation := s.handle.Generation()
	s.timer.disarm()
	s.handle = Handle{}
	s.callback = nil
	s.arg = 0
	s.cyclic = false
	s.interval = 0
	*handle = Handle{}

	e.trace(log.TimerEvent{
		Action:     log.TimerDeleted,
		Slot:       index,
		Generation: generation,
	})
	return nil
}

// slotFired runs on a platform timer goroutine. It snapshots the slot's
// current generation and queues the notification for the dispatch
// goroutine.
func (e *Engine) slotFired(index int) {
	e.mu.Lock()
	if e.stopped || index >= len(e.slots) {
		e.mu.Unlock()
		return
	}
	generation := e.slots[index].handle.Generation()
	e.mu.Unlock()

	select {
	case e.expiryCh <- expiry{slot: index, generation: generation}:
	case <-e.stopCh:
	}
}

// dispatchLoop is the engine's single dispatch goroutine. It is the only
// context that invokes timer callbacks, which serializes callback
// execution across all slots.
func (e *Engine) dispatchLoop() {
	defer close(e.done)

	runtime.LockOSThread()
	if err := setDispatchPriority(e.cfg.DispatchPriority); err != nil {
		// Best effort: keep running at default priority.
		e.logger.Warn("could not raise dispatch thread priority",
			"priority", e.cfg.DispatchPriority, "err", err)
	}

	for {
		select {
		case <-e.stopCh:
			return
		case exp := <-e.expiryCh:
			e.dispatchExpiry(exp)
		}
	}
}

// dispatchExpiry delivers one expiry notification. The slot is read under
// the engine mutex so the callback always receives the slot's current
// handle and argument; the callback itself runs outside the lock.
func (e *Engine) dispatchExpiry(exp expiry) {
	e.mu.Lock()
	if e.stopped || exp.slot >= len(e.slots) {
		e.mu.Unlock()
		return
	}
	s := &e.slots[exp.slot]
	callback := s.callback
	arg := EventArg{Handle: s.handle, Arg: s.arg}
	e.mu.Unlock()

	if callback == nil {
		// Expiry of a configuration deleted before delivery.
		e.trace(log.TimerEvent{
			Action:     log.TimerStaleDrop,
			Slot:       exp.slot,
			Generation: exp.generation,
		})
		return
	}

	e.trace(log.TimerEvent{
		Action:     log.TimerFired,
		Slot:       exp.slot,
		Generation: arg.Handle.Generation(),
	})
	callback(arg)
}

func (e *Engine) trace(ev log.TimerEvent) {
	e.tracer.Log(log.Event{
		Timestamp:  time.Now(),
		InstanceID: e.id,
		Source:     log.SourceTimer,
		Timer:      &ev,
	})
}
