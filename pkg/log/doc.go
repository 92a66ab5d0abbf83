// Package log provides structured trace capture for the kernel real-time
// core.
//
// This package defines the Logger interface and Event types for recording
// timer engine activity (arm, fire, delete, stale drops) and timesync relay
// activity (sync sent, sync dropped, control toggles). It is separate from
// operational logging (slog) - trace capture produces a complete
// machine-readable record of real-time behavior for offline jitter and
// latency analysis.
//
// # Basic Usage
//
// Components accept a Logger via their options:
//
//	// For development: trace to console via slog
//	hrestimer.WithTracer(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	tracer, _ := log.NewFileLogger("/var/log/oplk/kernel.olog")
//
//	// Both: use MultiLogger
//	log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), tracer)
//
// # File Format
//
// Trace files use CBOR encoding with .olog extension. The oplk-trace CLI
// tool reads, filters, and prints them.
package log
