//go:build !linux

package hrestimer

import "errors"

var errPriorityUnsupported = errors.New("real-time scheduling not supported on this platform")

// setDispatchPriority is a no-op stub; only Linux supports SCHED_FIFO
// elevation. The engine logs the failure and keeps default priority.
func setDispatchPriority(int) error {
	return errPriorityUnsupported
}
