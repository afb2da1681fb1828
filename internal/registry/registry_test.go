package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simonhull/cratemeta/internal/types"
)

// mockDecoder implements PayloadDecoder for testing.
type mockDecoder struct {
	name string
	err  error
}

func (m *mockDecoder) Decode(payload []byte, t *types.Track) error {
	if m.err != nil {
		return m.err
	}
	t.Title = m.name + ":" + string(payload)
	return nil
}

func TestRegisterAndGet(t *testing.T) {
	r := New()
	r.Register("Test Payload", "test", &mockDecoder{name: "test"})

	got := r.Get("Test Payload")
	if got == nil {
		t.Fatal("Get() returned nil for registered descriptor")
	}

	md, ok := got.(*mockDecoder)
	if !ok {
		t.Fatal("Get() returned wrong decoder type")
	}
	if md.name != "test" {
		t.Errorf("Decoder name = %q, want %q", md.name, "test")
	}
}

func TestGet_Unregistered(t *testing.T) {
	if got := New().Get("Serato Overview"); got != nil {
		t.Errorf("Get() = %v for unregistered descriptor, want nil", got)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	r := New()
	r.Register("P", "p", &mockDecoder{name: "first"})
	r.Register("P", "p", &mockDecoder{name: "second"})

	md := r.Get("P").(*mockDecoder)
	if md.name != "second" {
		t.Errorf("Decoder name = %q, want %q (should be overwritten)", md.name, "second")
	}
}

func TestDescriptors(t *testing.T) {
	r := New()
	r.Register("b", "b", &mockDecoder{})
	r.Register("a", "a", &mockDecoder{})

	if diff := cmp.Diff([]string{"a", "b"}, r.Descriptors()); diff != "" {
		t.Errorf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	boom := errors.New("boom")

	r := New()
	r.Register("Good", "good", &mockDecoder{name: "good"})
	r.Register("Bad", "bad", &mockDecoder{err: boom})
	r.Register("Func", "func", DecoderFunc(func(payload []byte, t *types.Track) error {
		t.Key = string(payload)
		return nil
	}))

	track := &types.Track{Path: "a.mp3"}

	if err := r.Apply(track, "Good", []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Apply(track, "Func", []byte("8A")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Apply(track, "Unknown", []byte("ignored")); err != nil {
		t.Errorf("unknown descriptor should be ignored, got %v", err)
	}
	if track.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", track.Warnings)
	}

	err := r.Apply(track, "Bad", []byte("y"))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped decode error, got %v", err)
	}

	if track.Title != "good:x" || track.Key != "8A" {
		t.Errorf("earlier payloads lost: %+v", track)
	}
	want := []types.Warning{{Stage: "bad", Message: "boom"}}
	if diff := cmp.Diff(want, track.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}
