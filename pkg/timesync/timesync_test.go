package timesync

import (
	"errors"
	"testing"

	"github.com/paopaol/openPOWERLINK-V2/pkg/event"
)

// fakeTransport records CAL calls for assertions.
type fakeTransport struct {
	initCalls    int
	exitCalls    int
	sendCalls    int
	controlCalls []bool

	initErr    error
	sendErr    error
	controlErr error
}

func (f *fakeTransport) Init() error {
	f.initCalls++
	return f.initErr
}

func (f *fakeTransport) Exit() {
	f.exitCalls++
}

func (f *fakeTransport) SendSyncEvent() error {
	f.sendCalls++
	return f.sendErr
}

func (f *fakeTransport) ControlSync(enable bool) error {
	if f.controlErr != nil {
		return f.controlErr
	}
	f.controlCalls = append(f.controlCalls, enable)
	return nil
}

var _ Transport = (*fakeTransport)(nil)

func TestInitExitDelegate(t *testing.T) {
	transport := &fakeTransport{}
	d := New(transport)

	if err := d.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	d.Exit()

	if transport.initCalls != 1 {
		t.Errorf("transport Init called %d times, want 1", transport.initCalls)
	}
	if transport.exitCalls != 1 {
		t.Errorf("transport Exit called %d times, want 1", transport.exitCalls)
	}
}

func TestInitPropagatesError(t *testing.T) {
	wantErr := errors.New("shared memory unavailable")
	d := New(&fakeTransport{initErr: wantErr})

	if err := d.Init(); !errors.Is(err, wantErr) {
		t.Errorf("Init() error = %v, want %v", err, wantErr)
	}
}

func TestSendSyncEventDelegates(t *testing.T) {
	transport := &fakeTransport{}
	d := New(transport)

	if err := d.SendSyncEvent(); err != nil {
		t.Fatalf("SendSyncEvent() error = %v", err)
	}
	if transport.sendCalls != 1 {
		t.Errorf("transport SendSyncEvent called %d times, want 1", transport.sendCalls)
	}
}

func TestSendSyncEventPropagatesError(t *testing.T) {
	wantErr := errors.New("user side gone")
	d := New(&fakeTransport{sendErr: wantErr})

	if err := d.SendSyncEvent(); !errors.Is(err, wantErr) {
		t.Errorf("SendSyncEvent() error = %v, want %v", err, wantErr)
	}
}

func TestProcessControlForwardsToggle(t *testing.T) {
	tests := []struct {
		name   string
		enable bool
	}{
		{"Enable", true},
		{"Disable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}
			d := New(transport)

			if err := d.Process(event.NewTimesyncControl(tt.enable)); err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(transport.controlCalls) != 1 {
				t.Fatalf("ControlSync called %d times, want 1", len(transport.controlCalls))
			}
			if transport.controlCalls[0] != tt.enable {
				t.Errorf("ControlSync(%v), want ControlSync(%v)",
					transport.controlCalls[0], tt.enable)
			}
		})
	}
}

func TestProcessControlPropagatesError(t *testing.T) {
	wantErr := errors.New("control channel closed")
	d := New(&fakeTransport{controlErr: wantErr})

	if err := d.Process(event.NewTimesyncControl(true)); !errors.Is(err, wantErr) {
		t.Errorf("Process() error = %v, want %v", err, wantErr)
	}
}

func TestProcessUnknownEventType(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
	}{
		{"NmtStateChange", event.Event{Type: event.TypeNmtStateChange}},
		{"Error", event.Event{Type: event.TypeError}},
		{"Unknown", event.Event{Type: event.Type(200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}
			d := New(transport)

			if err := d.Process(tt.ev); !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("Process() error = %v, want ErrInvalidEvent", err)
			}
			if len(transport.controlCalls) != 0 {
				t.Errorf("ControlSync called for misrouted event: %v", transport.controlCalls)
			}
		})
	}
}

func TestProcessMalformedControlPayload(t *testing.T) {
	transport := &fakeTransport{}
	d := New(transport)

	ev := event.Event{Type: event.TypeTimesyncControl, Arg: 1}
	if err := d.Process(ev); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Process() error = %v, want ErrInvalidEvent", err)
	}
	if len(transport.controlCalls) != 0 {
		t.Errorf("ControlSync called for malformed payload: %v", transport.controlCalls)
	}
}
