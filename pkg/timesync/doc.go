// Package timesync implements the kernel timesync dispatcher.
//
// Once per network cycle the cyclic engine calls SendSyncEvent to signal
// that cycle boundary data is ready. The dispatcher is a thin relay: the
// actual kernel-to-user delivery is performed by a CAL transport, which
// may be a direct call, a shared-memory signal or a cross-context post
// depending on deployment. Whether sync events propagate at all is
// toggled at runtime by timesync control events arriving through Process.
//
// LocalTransport is the in-process CAL for single-binary deployments: the
// user side blocks in WaitSyncEvent and is woken for every forwarded sync
// event.
package timesync
