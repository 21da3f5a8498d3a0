package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EWMH window state atoms used for the maximized/fullscreen/sticky flags.
const (
	stateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
	stateSticky        = "_NET_WM_STATE_STICKY"
)

// stickyDesktop is the _NET_WM_DESKTOP value for windows on all desktops.
const stickyDesktop = 0xFFFFFFFF

// ListNormalWindows returns the EWMH client list filtered to normal
// application windows, in client-list order.
func (c *Connection) ListNormalWindows() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	out := make([]xproto.Window, 0, len(clients))
	for _, win := range clients {
		if c.IsNormalWindow(win) {
			out = append(out, win)
		}
	}
	return out, nil
}

// IsNormalWindow checks if a window is a normal application window.
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// A maximized window ignores geometry requests; clear the state first.
	if err := c.unmaximizeWindow(windowID); err != nil {
		// Some windows don't support this; the move may still succeed.
	}

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
	}

	return nil
}

// unmaximizeWindow removes maximized state from a window.
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == stateMaximizedHorz || state == stateMaximizedVert {
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}

	return nil
}

// WindowStates returns the _NET_WM_STATE atoms set on a window as a lookup
// set. A window with no readable state yields an empty set.
func (c *Connection) WindowStates(windowID xproto.Window) map[string]bool {
	out := make(map[string]bool)
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return out
	}
	for _, s := range states {
		out[s] = true
	}
	return out
}

// AddWindowState requests the WM add a _NET_WM_STATE atom to a window.
func (c *Connection) AddWindowState(windowID xproto.Window, atom string) error {
	return ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateAdd, atom)
}

// WindowDesktop returns the desktop number a window is on. Returns -1 for
// "sticky" windows (visible on all desktops).
func (c *Connection) WindowDesktop(windowID xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	if desktop == stickyDesktop {
		return -1, nil
	}
	return int(desktop), nil
}

// SetWindowDesktop moves a window to the specified virtual desktop; pass -1
// to make it sticky. Sends a _NET_WM_DESKTOP client message to the root
// window per EWMH spec. We build the message manually because the xgbutil
// ewmh.WmDesktopReq helper panics on this library version (uint vs int type
// assertion).
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_DESKTOP")), "_NET_WM_DESKTOP").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_DESKTOP: %w", err)
	}

	target := uint32(desktop)
	if desktop < 0 {
		target = stickyDesktop
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{target, sourceIndication, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
