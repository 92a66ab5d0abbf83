// Package hrestimer implements the kernel high-resolution timer engine.
//
// The engine owns a small fixed set of independently armable timers. Each
// slot is backed by a platform timer bound to the monotonic clock; the
// platform resource is created once at Start and lives until Stop,
// regardless of whether the slot is logically armed. Callers never touch
// slots directly - they hold opaque handles and reconfigure timers through
// ModifyTimer/DeleteTimer.
//
// # Handles
//
// A Handle pairs a slot index with a generation counter. The zero Handle
// means "no timer"; passing it to ModifyTimer allocates a free slot. Every
// reconfiguration bumps the slot's generation, and the bump happens before
// the platform timer is rearmed. If the previous configuration's timer
// expires concurrently with the rearm, the callback argument carries the
// slot's current (post-bump) handle, so a consumer comparing it against
// its own stale handle can discard the firing.
//
// # Dispatch
//
// Expiry notifications from all slots funnel into one channel consumed by
// a single dedicated dispatch goroutine, so at most one timer callback
// runs at any moment, across all slots. The goroutine is pinned to its OS
// thread and moved to SCHED_FIFO on Linux; if the priority raise fails
// (typically for lack of CAP_SYS_NICE) the engine logs a warning and runs
// at default priority.
//
// # Intervals
//
// Intervals below the minimum floors are clamped upward: 20 µs for
// one-shot timers, 100 µs for cyclic timers. Pathologically short
// intervals would otherwise saturate the dispatch goroutine.
package hrestimer
