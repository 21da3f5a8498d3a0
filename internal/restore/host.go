// Package restore orchestrates capturing window geometry at shutdown and
// applying it back at startup.
package restore

import "github.com/1broseidon/framekeep/internal/frame"

// WindowID is a window-system-neutral window identifier.
type WindowID uint32

// Host abstracts the window-system operations the coordinator needs. The X11
// adapter in internal/x11 is the production implementation.
type Host interface {
	// GraphicalSession reports whether a display is available at all.
	// Capture is skipped entirely in headless sessions.
	GraphicalSession() bool

	// ListWindows returns the live top-level application windows in
	// enumeration order. Non-application windows (docks, splash screens,
	// notifications) are already filtered out.
	ListWindows() ([]WindowID, error)

	// Attributes reads the full attribute map of one window.
	Attributes(WindowID) (frame.Attributes, error)

	// CreateWindow opens a new window and applies the given attributes.
	CreateWindow(frame.Attributes) (WindowID, error)

	// InitialWindowConfig and SetInitialWindowConfig expose the attribute
	// map the host applies to the first window it opens.
	InitialWindowConfig() frame.Attributes
	SetInitialWindowConfig(frame.Attributes)
}
