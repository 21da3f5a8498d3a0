package x11

import (
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/framekeep/internal/frame"
	"github.com/1broseidon/framekeep/internal/restore"
)

// HostOptions configures the X11 host adapter.
type HostOptions struct {
	// FrameCommand is spawned to open one new window during recreation.
	FrameCommand []string
	// SpawnTimeout bounds the wait for a spawned window to appear in the
	// client list.
	SpawnTimeout time.Duration
}

// Host adapts an X11 connection to the restore.Host capability interface.
// The "initial window config" is held as a pending attribute map applied to
// the first normal window that maps.
type Host struct {
	conn *Connection
	opts HostOptions

	initial        frame.Attributes
	pendingInitial bool
}

func NewHost(conn *Connection, opts HostOptions) *Host {
	if opts.SpawnTimeout <= 0 {
		opts.SpawnTimeout = 10 * time.Second
	}
	return &Host{
		conn:           conn,
		opts:           opts,
		initial:        frame.New(),
		pendingInitial: true,
	}
}

// GraphicalSession reports whether the adapter is talking to a live display.
func (h *Host) GraphicalSession() bool {
	return h.conn != nil && GraphicalSession()
}

// ListWindows returns the live normal application windows in EWMH
// client-list order.
func (h *Host) ListWindows() ([]restore.WindowID, error) {
	wins, err := h.conn.ListNormalWindows()
	if err != nil {
		return nil, err
	}
	out := make([]restore.WindowID, 0, len(wins))
	for _, w := range wins {
		out = append(out, restore.WindowID(w))
	}
	return out, nil
}

// Attributes reads a window's geometry and state flags in canonical key
// order: left, top, width, height, maximized, fullscreen, sticky, desktop.
func (h *Host) Attributes(w restore.WindowID) (frame.Attributes, error) {
	win := xproto.Window(w)
	attrs := frame.New()

	geom, err := xwindow.New(h.conn.XUtil, win).DecorGeometry()
	if err != nil {
		return attrs, fmt.Errorf("failed to read geometry for window %d: %w", w, err)
	}
	attrs.Set(frame.KeyLeft, frame.IntValue(geom.X()))
	attrs.Set(frame.KeyTop, frame.IntValue(geom.Y()))
	attrs.Set(frame.KeyWidth, frame.IntValue(geom.Width()))
	attrs.Set(frame.KeyHeight, frame.IntValue(geom.Height()))

	states := h.conn.WindowStates(win)
	attrs.Set(frame.KeyMaximized, frame.BoolValue(states[stateMaximizedHorz] && states[stateMaximizedVert]))
	attrs.Set(frame.KeyFullscreen, frame.BoolValue(states[stateFullscreen]))

	desktop, err := h.conn.WindowDesktop(win)
	if err != nil {
		// Some WMs don't set _NET_WM_DESKTOP; fall back to the state atom.
		attrs.Set(frame.KeySticky, frame.BoolValue(states[stateSticky]))
		return attrs, nil
	}
	attrs.Set(frame.KeySticky, frame.BoolValue(desktop < 0))
	if desktop >= 0 {
		attrs.Set(frame.KeyDesktop, frame.IntValue(desktop))
	}
	return attrs, nil
}

// CreateWindow spawns the configured frame command, waits for its window to
// appear in the client list, and applies the given attributes to it.
func (h *Host) CreateWindow(attrs frame.Attributes) (restore.WindowID, error) {
	if len(h.opts.FrameCommand) == 0 {
		return 0, fmt.Errorf("no frame command configured")
	}

	existing := make(map[xproto.Window]struct{})
	if wins, err := h.conn.ListNormalWindows(); err == nil {
		for _, w := range wins {
			existing[w] = struct{}{}
		}
	}

	cmd := exec.Command(h.opts.FrameCommand[0], h.opts.FrameCommand[1:]...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to spawn %q: %w", h.opts.FrameCommand[0], err)
	}
	// Do not wait; the window process is long-lived.

	win, err := h.waitForNewWindow(existing)
	if err != nil {
		return 0, err
	}
	h.applyAttributes(win, attrs)
	return restore.WindowID(win), nil
}

// waitForNewWindow polls the client list until a window not in existing
// appears, or the spawn timeout elapses.
func (h *Host) waitForNewWindow(existing map[xproto.Window]struct{}) (xproto.Window, error) {
	deadline := time.Now().Add(h.opts.SpawnTimeout)

	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()

	for {
		wins, err := h.conn.ListNormalWindows()
		if err == nil {
			for _, w := range wins {
				if _, ok := existing[w]; !ok {
					return w, nil
				}
			}
		}

		if time.Now().After(deadline) {
			return 0, fmt.Errorf("timeout waiting for spawned window after %s", h.opts.SpawnTimeout)
		}

		<-ticker.C
	}
}

// InitialWindowConfig returns the attribute map pending for the first window.
func (h *Host) InitialWindowConfig() frame.Attributes {
	return h.initial
}

// SetInitialWindowConfig replaces the attribute map applied to the first
// normal window that maps.
func (h *Host) SetInitialWindowConfig(attrs frame.Attributes) {
	h.initial = attrs
	h.pendingInitial = true
}

// OnWindowCreated registers cb to run for every normal window that maps on
// this display, and returns a function that deregisters it. The pending
// initial-window config is applied to the first mapped window before cb runs.
func (h *Host) OnWindowCreated(cb func(restore.WindowID)) (func(), error) {
	root := xwindow.New(h.conn.XUtil, h.conn.Root)
	if err := root.Listen(xproto.EventMaskSubstructureNotify); err != nil {
		return nil, fmt.Errorf("failed to listen on root window: %w", err)
	}

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if !h.conn.IsNormalWindow(ev.Window) {
			return
		}
		if h.pendingInitial {
			h.pendingInitial = false
			h.applyAttributes(ev.Window, h.initial)
		}
		cb(restore.WindowID(ev.Window))
	}).Connect(h.conn.XUtil, h.conn.Root)

	return func() {
		xevent.Detach(h.conn.XUtil, h.conn.Root)
	}, nil
}

// applyAttributes applies geometry and state flags to a window. Failures are
// logged and skipped; a window at default geometry is the accepted fallback.
func (h *Host) applyAttributes(win xproto.Window, attrs frame.Attributes) {
	if attrs.OrderedMap == nil || attrs.Len() == 0 {
		return
	}

	// Unspecified geometry keys keep the window's current value.
	x, y, width, height := 0, 0, 0, 0
	if geom, err := xwindow.New(h.conn.XUtil, win).DecorGeometry(); err == nil {
		x, y, width, height = geom.X(), geom.Y(), geom.Width(), geom.Height()
	}
	hasGeometry := false
	if v, ok := attrs.Get(frame.KeyLeft); ok {
		x, hasGeometry = v.Int(), true
	}
	if v, ok := attrs.Get(frame.KeyTop); ok {
		y, hasGeometry = v.Int(), true
	}
	if v, ok := attrs.Get(frame.KeyWidth); ok {
		width, hasGeometry = v.Int(), true
	}
	if v, ok := attrs.Get(frame.KeyHeight); ok {
		height, hasGeometry = v.Int(), true
	}
	if hasGeometry {
		if err := h.conn.MoveResizeWindow(win, x, y, width, height); err != nil {
			log.Printf("x11: warning: move/resize window %d: %v", win, err)
		}
	}

	if v, ok := attrs.Get(frame.KeyDesktop); ok {
		if err := h.conn.SetWindowDesktop(win, v.Int()); err != nil {
			log.Printf("x11: warning: set desktop for window %d: %v", win, err)
		}
	}
	if v, ok := attrs.Get(frame.KeySticky); ok && v.Bool() {
		if err := h.conn.SetWindowDesktop(win, -1); err != nil {
			log.Printf("x11: warning: make window %d sticky: %v", win, err)
		}
	}

	// State requests go last so the WM doesn't clamp the geometry change.
	if v, ok := attrs.Get(frame.KeyMaximized); ok && v.Bool() {
		h.conn.AddWindowState(win, stateMaximizedHorz)
		h.conn.AddWindowState(win, stateMaximizedVert)
	}
	if v, ok := attrs.Get(frame.KeyFullscreen); ok && v.Bool() {
		h.conn.AddWindowState(win, stateFullscreen)
	}
}
