package keys_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/MrWong99/quiesce/internal/keys"
	"github.com/MrWong99/quiesce/internal/keys/mock"
)

func TestChord_EventOrder(t *testing.T) {
	t.Parallel()
	p := &mock.Presser{}
	if err := keys.Chord(p, "insert", "q"); err != nil {
		t.Fatalf("Chord: %v", err)
	}
	want := []string{"down:insert", "tap:q", "up:insert"}
	if got := p.Recorded(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestChord_ReleasesModifierOnTapFailure(t *testing.T) {
	t.Parallel()
	errPress := errors.New("press failed")
	p := &mock.Presser{}

	// Fail only the tap: arm the error after the modifier is held.
	armed := &failAfterDown{Presser: p, err: errPress}

	err := keys.Chord(armed, "insert", "q")
	if !errors.Is(err, errPress) {
		t.Fatalf("err = %v, want wrapped %v", err, errPress)
	}
	got := p.Recorded()
	if got[len(got)-1] != "up:insert" {
		t.Errorf("last event = %q, want up:insert (modifier must be released)", got[len(got)-1])
	}
}

// failAfterDown lets Down succeed, then fails Tap while keeping Up working.
type failAfterDown struct {
	*mock.Presser
	err error
}

func (f *failAfterDown) Tap(key string) error {
	_ = f.Presser.Tap(key)
	return f.err
}

func (f *failAfterDown) Up(key string) error {
	return f.Presser.Up(key)
}
