//go:build !windows

package nvda

// stubClient stands in for the controller client on platforms without it.
type stubClient struct{}

// NewClient returns a stub [Client]: the probe always reports not running and
// dispatch methods return [ErrUnsupported]. The dllPath argument is ignored.
func NewClient(dllPath string) Client {
	return stubClient{}
}

func (stubClient) Running() bool { return false }

func (stubClient) StatusCode() int32 { return -1 }

func (stubClient) Speak(string) error { return ErrUnsupported }

func (stubClient) CancelSpeech() error { return ErrUnsupported }

func (stubClient) Braille(string) error { return ErrUnsupported }
