//go:build windows

package nvda

import (
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// dllClient drives NVDA through the controller client library. Procs are
// resolved lazily so construction never fails; a missing library surfaces as
// "not running" from the probe and as errors from dispatch methods.
type dllClient struct {
	testIfRunning  *windows.LazyProc
	speakText      *windows.LazyProc
	cancelSpeech   *windows.LazyProc
	brailleMessage *windows.LazyProc
}

// NewClient returns a [Client] backed by the controller client library at
// dllPath. Pass [DefaultDLLPath] for the conventional location beside the
// binary.
func NewClient(dllPath string) Client {
	dll := windows.NewLazyDLL(dllPath)
	return &dllClient{
		testIfRunning:  dll.NewProc("nvdaController_testIfRunning"),
		speakText:      dll.NewProc("nvdaController_speakText"),
		cancelSpeech:   dll.NewProc("nvdaController_cancelSpeech"),
		brailleMessage: dll.NewProc("nvdaController_brailleMessage"),
	}
}

func (c *dllClient) StatusCode() int32 {
	if err := c.testIfRunning.Find(); err != nil {
		slog.Debug("nvda controller client unavailable", "err", err)
		return -1
	}
	r1, _, _ := c.testIfRunning.Call()
	return int32(r1)
}

func (c *dllClient) Running() bool {
	code := c.StatusCode()
	if code != StatusRunning {
		slog.Debug("nvda not running", "status", code)
		return false
	}
	return true
}

// checkReachable converts a non-running status into a dispatch error carrying
// the system error text for the status code.
func (c *dllClient) checkReachable(op string) error {
	code := c.StatusCode()
	if code == StatusRunning {
		return nil
	}
	if code < 0 {
		return fmt.Errorf("nvda: %s: controller client unavailable", op)
	}
	return fmt.Errorf("nvda: %s: controller unreachable: %w", op, syscall.Errno(code))
}

func (c *dllClient) Speak(text string) error {
	if err := c.checkReachable("speak"); err != nil {
		return err
	}
	p, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return fmt.Errorf("nvda: speak: encode text: %w", err)
	}
	r1, _, _ := c.speakText.Call(uintptr(unsafe.Pointer(p)))
	if code := int32(r1); code != 0 {
		return fmt.Errorf("nvda: speakText failed: %w", syscall.Errno(code))
	}
	return nil
}

func (c *dllClient) CancelSpeech() error {
	if err := c.checkReachable("cancel speech"); err != nil {
		return err
	}
	r1, _, _ := c.cancelSpeech.Call()
	if code := int32(r1); code != 0 {
		return fmt.Errorf("nvda: cancelSpeech failed: %w", syscall.Errno(code))
	}
	return nil
}

func (c *dllClient) Braille(text string) error {
	if err := c.checkReachable("braille"); err != nil {
		return err
	}
	p, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return fmt.Errorf("nvda: braille: encode text: %w", err)
	}
	r1, _, _ := c.brailleMessage.Call(uintptr(unsafe.Pointer(p)))
	if code := int32(r1); code != 0 {
		return fmt.Errorf("nvda: brailleMessage failed: %w", syscall.Errno(code))
	}
	return nil
}
