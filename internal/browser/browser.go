// Package browser opens item links in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener launches URLs for a given OS.
type Opener struct {
	GOOS  string
	Start func(name string, args ...string) error
}

// Default targets the running OS and starts the command without waiting.
var Default = Opener{
	GOOS: runtime.GOOS,
	Start: func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	},
}

// Open opens rawURL with the default opener.
func Open(rawURL string) error {
	return Default.Open(rawURL)
}

// Open validates rawURL and hands it to the platform's opener. Only http
// and https links are accepted.
func (o Opener) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	name, args := command(o.GOOS, rawURL)
	return o.Start(name, args...)
}

// Validate rejects anything but absolute http(s) URLs.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without host: %q", rawURL)
	}
	return nil
}

func command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// rundll32 avoids cmd.exe interpreting the URL
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
