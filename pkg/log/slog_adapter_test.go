package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogAdapterTimerEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		Timestamp:  time.Now().UTC(),
		InstanceID: "engine-1",
		Source:     SourceTimer,
		Timer: &TimerEvent{
			Action:     TimerFired,
			Slot:       1,
			Generation: 3,
		},
	})

	out := buf.String()
	for _, want := range []string{"instance_id=engine-1", "source=TIMER", "action=FIRED", "slot=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapterSyncControl(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		InstanceID: "sync-1",
		Source:     SourceTimesync,
		Sync:       &SyncEvent{Action: SyncControl, Enabled: false},
	})

	out := buf.String()
	for _, want := range []string{"source=TIMESYNC", "action=CONTROL", "enabled=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
