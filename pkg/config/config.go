// Package config loads the kernel real-time core configuration from YAML
// files. Missing fields fall back to the component defaults, so a partial
// file only overrides what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paopaol/openPOWERLINK-V2/pkg/hrestimer"
	"github.com/paopaol/openPOWERLINK-V2/pkg/timesync"
)

// MaxRTPriority is the highest valid SCHED_FIFO priority.
const MaxRTPriority = 99

// Config is the YAML-backed configuration of the kernel core.
type Config struct {
	Timer TimerConfig `yaml:"timer"`
	Sync  SyncConfig  `yaml:"sync"`
	Trace TraceConfig `yaml:"trace"`
}

// TimerConfig configures the high-resolution timer engine.
type TimerConfig struct {
	// Count is the number of timer slots.
	Count int `yaml:"count"`

	// DispatchPriority is the SCHED_FIFO priority of the dispatch thread.
	DispatchPriority int `yaml:"dispatchPriority"`

	// QueueDepth is the expiry queue capacity.
	QueueDepth int `yaml:"queueDepth"`
}

// SyncConfig configures the timesync local transport.
type SyncConfig struct {
	// QueueDepth is the sync queue capacity.
	QueueDepth int `yaml:"queueDepth"`
}

// TraceConfig configures trace capture.
type TraceConfig struct {
	// Path is the trace file to append to. Empty disables file tracing.
	Path string `yaml:"path"`

	// Console mirrors trace events to the operational logger at debug
	// level.
	Console bool `yaml:"console"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Timer: TimerConfig{
			Count:            hrestimer.DefaultTimerCount,
			DispatchPriority: hrestimer.DefaultDispatchPriority,
			QueueDepth:       hrestimer.DefaultQueueDepth,
		},
		Sync: SyncConfig{
			QueueDepth: timesync.DefaultSyncQueueDepth,
		},
	}
}

// Load reads a YAML configuration file, overlays it on the defaults and
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.Timer.Count < 1 {
		return fmt.Errorf("timer.count %d: must be at least 1", c.Timer.Count)
	}
	if c.Timer.DispatchPriority < 1 || c.Timer.DispatchPriority > MaxRTPriority {
		return fmt.Errorf("timer.dispatchPriority %d: must be 1..%d",
			c.Timer.DispatchPriority, MaxRTPriority)
	}
	if c.Timer.QueueDepth < 1 {
		return fmt.Errorf("timer.queueDepth %d: must be at least 1", c.Timer.QueueDepth)
	}
	if c.Sync.QueueDepth < 1 {
		return fmt.Errorf("sync.queueDepth %d: must be at least 1", c.Sync.QueueDepth)
	}
	return nil
}

// EngineConfig converts to the timer engine's configuration.
func (c Config) EngineConfig() hrestimer.Config {
	return hrestimer.Config{
		TimerCount:       c.Timer.Count,
		DispatchPriority: c.Timer.DispatchPriority,
		QueueDepth:       c.Timer.QueueDepth,
	}
}
