package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see trace events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("instance_id", event.InstanceID),
		slog.String("source", event.Source.String()),
	}

	switch {
	case event.Timer != nil:
		attrs = append(attrs,
			slog.String("action", event.Timer.Action.String()),
			slog.Int("slot", event.Timer.Slot),
			slog.Uint64("generation", uint64(event.Timer.Generation)),
		)
		if event.Timer.Interval != 0 {
			attrs = append(attrs, slog.Duration("interval", event.Timer.Interval))
		}
		if event.Timer.Cyclic {
			attrs = append(attrs, slog.Bool("cyclic", true))
		}
	case event.Sync != nil:
		attrs = append(attrs,
			slog.String("action", event.Sync.Action.String()),
		)
		if event.Sync.Action == SyncControl {
			attrs = append(attrs, slog.Bool("enabled", event.Sync.Enabled))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
