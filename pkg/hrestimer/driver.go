package hrestimer

import (
	"math"
	"sync"
	"time"
)

// timerDriver abstracts the platform timer service. The default driver is
// backed by the runtime's monotonic timers; tests substitute a fake to do
// fault injection and resource accounting.
type timerDriver interface {
	// create allocates one platform timer. fire is invoked on expiry from
	// an arbitrary goroutine; the timer starts disarmed.
	create(fire func()) (platformTimer, error)
}

// platformTimer is one platform timer resource, bound to its slot for the
// engine's whole lifetime.
type platformTimer interface {
	// arm schedules the next expiry after initial. A non-zero period makes
	// the timer self-rearming.
	arm(initial, period time.Duration)

	// disarm cancels any pending expiry. An expiry already in flight may
	// still deliver its notification.
	disarm()

	// destroy releases the platform resource. The timer must not be used
	// afterwards.
	destroy()
}

// monotonicDriver creates timers backed by time.Timer, which the Go
// runtime drives from the monotonic clock.
type monotonicDriver struct{}

func (monotonicDriver) create(fire func()) (platformTimer, error) {
	t := &monotonicTimer{fire: fire}
	// Created far in the future and stopped immediately: the resource
	// exists for the engine lifetime, arm/disarm only reschedule it.
	t.timer = time.AfterFunc(time.Duration(math.MaxInt64), t.onExpire)
	t.timer.Stop()
	return t, nil
}

// Compile-time interface satisfaction check.
var _ timerDriver = monotonicDriver{}

// monotonicTimer is one self-rearming time.Timer.
type monotonicTimer struct {
	fire func()

	mu     sync.Mutex
	timer  *time.Timer
	period time.Duration
	armed  bool
}

func (t *monotonicTimer) arm(initial, period time.Duration) {
	t.mu.Lock()
	t.armed = true
	t.period = period
	t.timer.Reset(initial)
	t.mu.Unlock()
}

func (t *monotonicTimer) disarm() {
	t.mu.Lock()
	t.armed = false
	t.period = 0
	t.timer.Stop()
	t.mu.Unlock()
}

func (t *monotonicTimer) destroy() {
	t.disarm()
}

// onExpire runs on the runtime timer goroutine.
func (t *monotonicTimer) onExpire() {
	t.mu.Lock()
	if !t.armed {
		// Disarmed while the expiry was in flight.
		t.mu.Unlock()
		return
	}
	if t.period > 0 {
		t.timer.Reset(t.period)
	} else {
		t.armed = false
	}
	fire := t.fire
	t.mu.Unlock()

	fire()
}

// Compile-time interface satisfaction check.
var _ platformTimer = (*monotonicTimer)(nil)
