// Package nvda wraps the NVDA controller client library and related desktop
// glue: the reachability probe, speech and braille dispatch, the capability
// marker left by the reader-side addon, and the toggle/restart actions.
//
// The controller client ships as nvdaControllerClient64.dll and is only
// available on Windows; on other platforms [NewClient] returns a stub whose
// probe always reports not running and whose dispatch methods return
// [ErrUnsupported].
package nvda

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrUnsupported is returned by dispatch methods on platforms without the
// controller client library.
var ErrUnsupported = errors.New("nvda: controller client requires windows")

// StatusRunning is the controller client status code meaning NVDA is
// reachable. Any other code means not running.
const StatusRunning = 0

// dllName is the controller client library, expected beside the binary.
const dllName = "nvdaControllerClient64.dll"

// Client is the surface of the NVDA controller client used by Quiesce.
type Client interface {
	// Running reports whether NVDA is reachable. It never fails: any
	// platform or library error maps to false, with the underlying status
	// recorded at debug level only.
	Running() bool

	// StatusCode returns the raw controller status from the last probe
	// round-trip, for diagnostics. [StatusRunning] means reachable.
	StatusCode() int32

	// Speak sends text to NVDA's speech synthesis.
	Speak(text string) error

	// CancelSpeech stops whatever NVDA is currently speaking.
	CancelSpeech() error

	// Braille shows text on the connected braille display.
	Braille(text string) error
}

// DefaultDLLPath returns the expected controller client library location:
// next to the running binary. Falls back to a bare name (resolved through
// the system search path) when the executable path is unknown.
func DefaultDLLPath() string {
	exe, err := os.Executable()
	if err != nil {
		return dllName
	}
	return filepath.Join(filepath.Dir(exe), dllName)
}

// Marker reports whether the reader-side addon advertises support for the
// query/disable command protocol. The addon drops a spec file into the NVDA
// user configuration directory on startup; its absence means the whole
// suppression protocol must be treated as unavailable.
type Marker struct {
	path string
}

// NewMarker returns a [Marker] watching the given spec file path.
func NewMarker(path string) Marker {
	return Marker{path: path}
}

// Path returns the spec file path this marker watches.
func (m Marker) Path() string { return m.path }

// Present reports whether the spec file currently exists. Stat errors of any
// kind count as absent.
func (m Marker) Present() bool {
	if m.path == "" {
		return false
	}
	_, err := os.Stat(m.path)
	return err == nil
}

// DefaultMarkerPath returns the conventional spec file location inside the
// NVDA user configuration directory (%APPDATA%\nvda on Windows).
func DefaultMarkerPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nvda", "quiesce_server_spec.json")
}
