//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "token" }
	t.Cleanup(func() { portalHandleToken = prev })

	opts := portalOptions(Options{Interactive: true, IncludeCursor: true})
	if opts["cursor_mode"].Value() != "embedded" || opts["interactive"].Value() != true {
		t.Fatalf("unexpected options %v", opts)
	}
	if opts["handle_token"].Value() != "token" {
		t.Fatalf("handle token not used")
	}
	if portalOptions(Options{})["cursor_mode"].Value() != "hidden" {
		t.Fatalf("cursor should be hidden by default")
	}
}

func TestResponsePath(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/shot%20one.png")}}
	if p, err := responsePath(ok); err != nil || p != "/tmp/shot one.png" {
		t.Fatalf("responsePath = %q, %v", p, err)
	}
	cancelled := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := responsePath(cancelled); err == nil {
		t.Fatalf("expected error for cancelled request")
	}
	if _, err := responsePath([]interface{}{uint32(0)}); err == nil {
		t.Fatalf("expected error for short body")
	}
	missing := []interface{}{uint32(0), map[string]dbus.Variant{}}
	if _, err := responsePath(missing); err == nil {
		t.Fatalf("expected error for missing uri")
	}
}

func TestLoadPNGRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := loadPNG(path)
	if err != nil {
		t.Fatalf("loadPNG: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temporary file not removed")
	}
}
