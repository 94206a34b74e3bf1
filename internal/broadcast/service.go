// Package broadcast fans playback events out to media metadata broadcast
// services (scrobblers, now-playing integrations).
//
// Every registered service gets its own ordered work queue, drained by one
// goroutine at a time, so a service never handles two events concurrently and
// sees events in the order they were dispatched. Services never wait on each
// other, and a failing or hung service only affects its own queue.
package broadcast

import (
	"context"

	"github.com/AJMerr/playcore/internal/media"
)

// Service is the capability every broadcast integration implements.
type Service interface {
	NewTrack(ctx context.Context, path string) error
	MetadataReceived(ctx context.Context, md media.Metadata) error
	StateChanged(ctx context.Context, state media.PlaybackState) error
	PositionChanged(ctx context.Context, ms uint64) error
	DurationChanged(ctx context.Context, ms uint64) error
}

// Event is one fan-out unit. The set of events is closed.
type Event interface {
	Kind() string
	deliver(ctx context.Context, svc Service) error
}

type NewTrack struct{ Path string }

type MetadataReceived struct{ Metadata media.Metadata }

type StateChanged struct{ State media.PlaybackState }

type PositionChanged struct{ Ms uint64 }

type DurationChanged struct{ Ms uint64 }

func (NewTrack) Kind() string { return "NewTrack" }
func (MetadataReceived) Kind() string { return "MetadataReceived" }
func (StateChanged) Kind() string { return "StateChanged" }
func (PositionChanged) Kind() string { return "PositionChanged" }
func (DurationChanged) Kind() string { return "DurationChanged" }

func (e NewTrack) deliver(ctx context.Context, svc Service) error {
	return svc.NewTrack(ctx, e.Path)
}

func (e MetadataReceived) deliver(ctx context.Context, svc Service) error {
	return svc.MetadataReceived(ctx, e.Metadata)
}

func (e StateChanged) deliver(ctx context.Context, svc Service) error {
	return svc.StateChanged(ctx, e.State)
}

func (e PositionChanged) deliver(ctx context.Context, svc Service) error {
	return svc.PositionChanged(ctx, e.Ms)
}

func (e DurationChanged) deliver(ctx context.Context, svc Service) error {
	return svc.DurationChanged(ctx, e.Ms)
}

// Nop is a Service that ignores every event.
type Nop struct{}

var _ Service = Nop{}

func (Nop) NewTrack(context.Context, string) error { return nil }
func (Nop) MetadataReceived(context.Context, media.Metadata) error { return nil }
func (Nop) StateChanged(context.Context, media.PlaybackState) error { return nil }
func (Nop) PositionChanged(context.Context, uint64) error { return nil }
func (Nop) DurationChanged(context.Context, uint64) error { return nil }
