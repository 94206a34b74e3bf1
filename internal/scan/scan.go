// Package scan describes the progress events pushed by the library scanner.
package scan

import (
	"fmt"
	"math"
)

type Kind int

const (
	// Idle is the state after a completed scan when no watcher is running.
	Idle Kind = iota
	Discovering
	Scanning
	Cleaning
	// WatchingIdle is the state after a completed scan while the watcher runs.
	WatchingIdle
)

// Event is one scanner progress report. Progress is only meaningful for
// Discovering; Current and Total only for Scanning.
type Event struct {
	Kind     Kind
	Progress uint64
	Current  uint64
	Total    uint64
}

func DiscoverProgress(found uint64) Event {
	return Event{Kind: Discovering, Progress: found}
}

func ScanProgress(current, total uint64) Event {
	return Event{Kind: Scanning, Current: current, Total: total}
}

// Active reports whether the scanner is doing work.
func (e Event) Active() bool {
	return e.Kind != Idle && e.Kind != WatchingIdle
}

// Percent returns the scan completion rounded to the nearest integer.
func (e Event) Percent() float64 {
	if e.Kind != Scanning || e.Total == 0 {
		return 0
	}
	return math.Round(float64(e.Current) / float64(e.Total) * 100)
}

// Label is the status-line text for the event.
func (e Event) Label() string {
	switch e.Kind {
	case Discovering:
		return fmt.Sprintf("Discovering files (%d)", e.Progress)
	case Scanning:
		return fmt.Sprintf("Scanning (%.0f%%)", e.Percent())
	case WatchingIdle:
		return "Watching for updates"
	default:
		return ""
	}
}
