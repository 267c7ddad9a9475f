package domain

import (
	"errors"
	"testing"
)

func TestParseTone(t *testing.T) {
	cases := []struct {
		raw  string
		want Tone
	}{
		{"compassionate", ToneCompassionate},
		{" Practical ", TonePractical},
		{"CURIOUS", ToneCurious},
	}
	for _, c := range cases {
		got, err := ParseTone(c.raw)
		if err != nil {
			t.Fatalf("ParseTone(%q): unexpected error %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("ParseTone(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestParseTone_Invalid(t *testing.T) {
	for _, raw := range []string{"", "grumpy", "compassion"} {
		if _, err := ParseTone(raw); !errors.Is(err, ErrInvalidTone) {
			t.Fatalf("ParseTone(%q): expected ErrInvalidTone, got %v", raw, err)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Tone != ToneCompassionate || s.UserName != "" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}
