// Package clipboard provides cross-platform clipboard access via shell commands.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrClipboardUnavailable is returned when clipboard access is not available.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Error wraps any failure to set the clipboard contents.
type Error struct {
	Command string // Backend command, empty when none was found
	Err     error
}

func (e *Error) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("copying to clipboard: %v", e.Err)
	}
	return fmt.Sprintf("copying to clipboard with %s: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// waitDelay bounds how long Copy waits for stderr to close after the backend
// exits. xclip and wl-copy leave a child serving the selection that keeps
// the pipe open.
var waitDelay = 500 * time.Millisecond

// Copier sets the system clipboard's text contents.
type Copier interface {
	Copy(text string) error
}

// System copies through the platform clipboard tool. A non-empty Command
// replaces backend detection.
type System struct {
	Command []string
}

// Copy implements Copier.
func (s System) Copy(text string) error {
	var (
		cmd *exec.Cmd
		err error
	)
	if len(s.Command) > 0 {
		cmd = exec.Command(s.Command[0], s.Command[1:]...)
	} else {
		cmd, err = getClipboardCommand()
		if err != nil {
			return &Error{Err: err}
		}
	}

	var stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(text)
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if err := cmd.Run(); err != nil && !errors.Is(err, exec.ErrWaitDelay) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &Error{Command: cmd.Args[0], Err: err}
	}
	return nil
}

// getClipboardCommand picks the clipboard backend for the running platform.
func getClipboardCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy"), nil
		}
	case "windows":
		if _, err := exec.LookPath("clip.exe"); err == nil {
			return exec.Command("clip.exe"), nil
		}
	default:
		// Wayland first, then X11
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			if _, err := exec.LookPath("wl-copy"); err == nil {
				return exec.Command("wl-copy"), nil
			}
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
	}
	return nil, ErrClipboardUnavailable
}
