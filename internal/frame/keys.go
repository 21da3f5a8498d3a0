package frame

// Attribute keys the X11 adapter knows how to read and apply. The tracked-key
// configuration is validated against this set.
const (
	KeyLeft       = "left"
	KeyTop        = "top"
	KeyWidth      = "width"
	KeyHeight     = "height"
	KeyMaximized  = "maximized"
	KeyFullscreen = "fullscreen"
	KeySticky     = "sticky"
	KeyDesktop    = "desktop"
)

// KnownKeys lists every supported attribute key in canonical capture order.
var KnownKeys = []string{
	KeyLeft,
	KeyTop,
	KeyWidth,
	KeyHeight,
	KeyMaximized,
	KeyFullscreen,
	KeySticky,
	KeyDesktop,
}

// KnownKey reports whether key names a supported attribute.
func KnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}
