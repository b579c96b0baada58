//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// osascriptNotification builds the AppleScript statement for a banner.
func osascriptNotification(title, body string) string {
	return fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, "Sketchpad")
}

func platformNotify(title, body string, _ Options) error {
	return exec.Command("osascript", "-e", osascriptNotification(title, body)).Run()
}
