//go:build linux

package notify

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest    = "org.freedesktop.Notifications"
	notifyPath    = "/org/freedesktop/Notifications"
	notifyTimeout = int32(5000)
)

// lastID is the server id of the previous notification, so a new save or
// copy replaces the old bubble instead of stacking on top of it.
var (
	lastMu sync.Mutex
	lastID uint32
)

// notifyHints tells the server which application sent the message and which
// picture to show for it.
func notifyHints(opts Options) map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"desktop-entry": dbus.MakeVariant("sketchpad"),
	}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return hints
}

func platformNotify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	lastMu.Lock()
	defer lastMu.Unlock()
	var id uint32
	err = conn.Object(notifyDest, notifyPath).Call(notifyDest+".Notify", 0,
		"Sketchpad", lastID, opts.IconPath, title, body, []string{}, notifyHints(opts), notifyTimeout).Store(&id)
	if err != nil {
		return err
	}
	lastID = id
	return nil
}
