package timeutil

import (
	"testing"
	"time"
)

func TestParseSpanDefault(t *testing.T) {
	d, err := ParseSpan("", 25*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 25*time.Minute {
		t.Fatalf("expected fallback, got %v", d)
	}
}

func TestParseSpanComposite(t *testing.T) {
	d, err := ParseSpan("1h30m15s", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Hour + 30*time.Minute + 15*time.Second
	if d != want {
		t.Fatalf("expected %v, got %v", want, d)
	}
	if got := FormatSpan(d); got != "1h30m15s" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestParseSpanBareMinutes(t *testing.T) {
	d, err := ParseSpan("50", 0)
	if err != nil || d != 50*time.Minute {
		t.Fatalf("expected 50m, got %v %v", d, err)
	}
}

func TestParseSpanInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3d", "0m"} {
		if _, err := ParseSpan(in, 0); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
