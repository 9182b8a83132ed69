// Package store holds the view state of each screen.
//
// Every controller owns one or more uistate.State slots. Methods that start a
// fetch set the slot to Loading synchronously and return a tea.Cmd; the
// Bubble Tea runtime runs the command off the update loop and feeds its
// result message back through the controller's Update. State is only ever
// mutated from the update loop, so no locking is needed.
//
// Each fetch is stamped with a per-slot sequence number. A result whose
// sequence is no longer the latest for its slot is dropped, so a slow,
// superseded response can never overwrite newer state.
package store

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// FallbackError is shown when a failure carries no message.
const FallbackError = "unknown error"

// seq issues sequence numbers for one state slot.
type seq uint64

// next invalidates every earlier number and returns a new one.
func (s *seq) next() uint64 {
	*s++
	return uint64(*s)
}

// current reports whether n is the latest number issued.
func (s seq) current(n uint64) bool {
	return uint64(s) == n
}

// deps are shared by all controllers.
type deps struct {
	ctx    context.Context
	logger *slog.Logger
}

func newDeps(ctx context.Context, logger *slog.Logger) deps {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return deps{ctx: ctx, logger: logger}
}

// dropStale logs a result that lost the race against a newer request.
func (d deps) dropStale(slot string, n uint64) tea.Cmd {
	d.logger.Debug("dropping stale response", slog.String("slot", slot), slog.Uint64("seq", n))
	return nil
}
