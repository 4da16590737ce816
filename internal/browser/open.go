// Package browser hands URLs to the operating system's default handler.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Command returns the command that opens url on goos.
func Command(goos, url string) (*exec.Cmd, error) {
	if url == "" {
		return nil, errors.New("open: empty url")
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		// start takes a window title first; empty is fine.
		return exec.Command("cmd", "/c", "start", "", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	}
	return nil, fmt.Errorf("unsupported operating system: %s", goos)
}

// Open opens url in the default browser without waiting for it to exit.
func Open(url string) error {
	cmd, err := Command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
