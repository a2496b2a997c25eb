package navigation

import (
	"fmt"
	"os/exec"
	"runtime"
)

// execCommand is swapped in tests.
var execCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenBrowser opens the URL in the local default browser. Used only in
// local mode; server deployments deliver the URL over the wire instead
// of launching anything.
func OpenBrowser(rawURL string) error {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = execCommand("xdg-open", rawURL)
	case "darwin":
		err = execCommand("open", rawURL)
	case "windows":
		err = execCommand("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	return nil
}
