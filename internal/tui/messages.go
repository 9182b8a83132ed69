// Package tui provides Bubble Tea models for the interactive TUI.
package tui

import "time"

// ToastDuration is how long the issue success notice stays visible.
const ToastDuration = 3 * time.Second

// toastExpiredMsg hides the issue success notice.
type toastExpiredMsg struct{}

// browserOpenedMsg reports the result of opening a repository URL.
type browserOpenedMsg struct {
	url string
	err error
}
