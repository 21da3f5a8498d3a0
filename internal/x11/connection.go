// Package x11 implements the window-system host capability on top of X11,
// using EWMH hints for window enumeration, geometry and state.
package x11

import (
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// GraphicalSession reports whether an X display is available to this process.
func GraphicalSession() bool {
	return os.Getenv("DISPLAY") != ""
}

// EventLoop starts the main X11 event loop (blocking).
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit asks the event loop to stop after the current event.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
