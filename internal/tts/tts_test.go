package tts_test

import (
	"errors"
	"testing"

	nvdamock "github.com/MrWong99/quiesce/internal/nvda/mock"
	"github.com/MrWong99/quiesce/internal/tts"
	ttsmock "github.com/MrWong99/quiesce/internal/tts/mock"
)

func TestReaderSpeaker_DispatchesToClient(t *testing.T) {
	t.Parallel()
	client := &nvdamock.Client{}
	s := tts.NewReaderSpeaker(client)

	if err := s.Speak("hello", true); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if len(client.Spoken) != 1 || client.Spoken[0] != "hello" {
		t.Errorf("Spoken = %v, want [hello]", client.Spoken)
	}
}

func TestRouter_RoutesByConfiguration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		viaReader bool
	}{
		{"reader route", true},
		{"fallback route", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := &ttsmock.Speaker{}
			fallback := &ttsmock.Speaker{}
			r := tts.NewRouter(tt.viaReader, reader, fallback, nil)

			if err := r.Speak("phrase done", false); err != nil {
				t.Fatalf("Speak: %v", err)
			}

			wantReader, wantFallback := 0, 1
			if tt.viaReader {
				wantReader, wantFallback = 1, 0
			}
			if reader.CallCount() != wantReader {
				t.Errorf("reader calls = %d, want %d", reader.CallCount(), wantReader)
			}
			if fallback.CallCount() != wantFallback {
				t.Errorf("fallback calls = %d, want %d", fallback.CallCount(), wantFallback)
			}
		})
	}
}

func TestRouter_PreservesInterruptFlag(t *testing.T) {
	t.Parallel()
	fallback := &ttsmock.Speaker{}
	r := tts.NewRouter(false, nil, fallback, nil)

	if err := r.Speak("now", true); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if got := fallback.Last(); !got.Interrupt {
		t.Error("interrupt flag not forwarded to the fallback speaker")
	}
}

func TestRouter_MissingSpeakerIsError(t *testing.T) {
	t.Parallel()
	r := tts.NewRouter(true, nil, &ttsmock.Speaker{}, nil)
	if err := r.Speak("hello", false); err == nil {
		t.Error("Speak with nil reader succeeded, want error")
	}
}

func TestRouter_SaySwallowsErrors(t *testing.T) {
	t.Parallel()
	fallback := &ttsmock.Speaker{Err: errors.New("device busy")}
	r := tts.NewRouter(false, nil, fallback, nil)

	// Must not panic or propagate.
	r.Say("Turning NVDA on")
	if fallback.CallCount() != 1 {
		t.Errorf("fallback calls = %d, want 1", fallback.CallCount())
	}
}
