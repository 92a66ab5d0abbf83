package timesync

// Transport is the CAL sync transport crossing the kernel/user boundary.
// Implementations decide how a sync event reaches the user side and own
// the sync-enable flag consulted on every relay.
type Transport interface {
	// Init prepares the transport for use.
	Init() error

	// Exit tears the transport down. Pending sync events are discarded.
	Exit()

	// SendSyncEvent relays one sync event to the user side. With sync
	// forwarding disabled this is a documented no-op returning nil.
	SendSyncEvent() error

	// ControlSync toggles sync event forwarding.
	ControlSync(enable bool) error
}
