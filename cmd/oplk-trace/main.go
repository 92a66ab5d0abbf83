// Command oplk-trace prints the contents of a kernel trace file (.olog).
//
// Usage:
//
//	oplk-trace [-source timer|sync] [-instance id] file.olog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/paopaol/openPOWERLINK-V2/pkg/log"
)

func main() {
	source := flag.String("source", "", "filter by subsystem: timer or sync")
	instance := flag.String("instance", "", "filter by instance ID")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: oplk-trace [-source timer|sync] [-instance id] file.olog")
		os.Exit(2)
	}

	filter := log.Filter{InstanceID: *instance}
	switch *source {
	case "":
	case "timer":
		s := log.SourceTimer
		filter.Source = &s
	case "sync":
		s := log.SourceTimesync
		filter.Source = &s
	default:
		fmt.Fprintf(os.Stderr, "unknown source %q\n", *source)
		os.Exit(2)
	}

	reader, err := log.NewFilteredReader(flag.Arg(0), filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open trace: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	count := 0
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read trace: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(formatEvent(ev))
		count++
	}
	fmt.Printf("%d events\n", count)
}

// formatEvent renders one event as a single line.
func formatEvent(ev log.Event) string {
	ts := ev.Timestamp.Format("15:04:05.000000")

	switch {
	case ev.Timer != nil:
		line := fmt.Sprintf("%s %-8s %-10s slot=%d gen=%d",
			ts, ev.Source, ev.Timer.Action, ev.Timer.Slot, ev.Timer.Generation)
		if ev.Timer.Interval != 0 {
			line += fmt.Sprintf(" interval=%s", ev.Timer.Interval)
		}
		if ev.Timer.Cyclic {
			line += " cyclic"
		}
		return line
	case ev.Sync != nil:
		line := fmt.Sprintf("%s %-8s %-10s", ts, ev.Source, ev.Sync.Action)
		if ev.Sync.Action == log.SyncControl {
			line += fmt.Sprintf(" enabled=%t", ev.Sync.Enabled)
		}
		return line
	case ev.Error != nil:
		return fmt.Sprintf("%s %-8s ERROR %s (%s)",
			ts, ev.Source, ev.Error.Message, ev.Error.Context)
	default:
		return fmt.Sprintf("%s %-8s <empty>", ts, ev.Source)
	}
}
