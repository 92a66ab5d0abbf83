//go:build linux

package hrestimer

import "golang.org/x/sys/unix"

// setDispatchPriority moves the calling thread to SCHED_FIFO at the given
// priority. The caller must be pinned to its OS thread. Raising the
// priority requires CAP_SYS_NICE or an appropriate RLIMIT_RTPRIO.
func setDispatchPriority(priority int) error {
	attr := &unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}
	return unix.SchedSetAttr(0, attr, 0)
}
