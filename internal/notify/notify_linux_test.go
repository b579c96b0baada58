//go:build linux

package notify

import "testing"

func TestNotifyHints(t *testing.T) {
	hints := notifyHints(Options{})
	if _, ok := hints["image-path"]; ok {
		t.Fatalf("image-path hint without an icon")
	}
	if v := hints["desktop-entry"].Value(); v != "sketchpad" {
		t.Fatalf("desktop-entry = %v", v)
	}
	hints = notifyHints(Options{IconPath: "/tmp/a.png"})
	if v := hints["image-path"].Value(); v != "/tmp/a.png" {
		t.Fatalf("image-path = %v", v)
	}
}
