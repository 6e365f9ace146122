package clock

import (
	"testing"
	"time"
)

func TestDisplayEasternStandardTime(t *testing.T) {
	f, err := NewFormatter("America/New_York")
	if err != nil {
		t.Fatalf("formatter error: %v", err)
	}

	// November 27 is outside daylight saving: UTC-5.
	utc := time.Date(2024, time.November, 27, 7, 8, 0, 0, time.UTC)
	got := f.Display(utc)
	want := "November 27, 2024 at 02:08 AM"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDisplayAcrossDSTBoundary(t *testing.T) {
	f, err := NewFormatter("America/New_York")
	if err != nil {
		t.Fatalf("formatter error: %v", err)
	}

	// January: EST, UTC-5. A fixed -5h subtraction happens to agree here.
	winter := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	if got, want := f.Display(winter), "January 15, 2025 at 07:00 AM"; got != want {
		t.Fatalf("winter: expected %q, got %q", want, got)
	}

	// July: EDT, UTC-4. A fixed -5h subtraction would say 07:00 and be wrong.
	summer := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
	if got, want := f.Display(summer), "July 15, 2025 at 08:00 AM"; got != want {
		t.Fatalf("summer: expected %q, got %q", want, got)
	}
}

func TestDisplayOrEmpty(t *testing.T) {
	f, err := NewFormatter("America/New_York")
	if err != nil {
		t.Fatalf("formatter error: %v", err)
	}
	if got := f.DisplayOrEmpty(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
	ts := time.Date(2024, time.November, 27, 7, 8, 0, 0, time.UTC)
	if got := f.DisplayOrEmpty(&ts); got != "November 27, 2024 at 02:08 AM" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestNewFormatterUnknownZone(t *testing.T) {
	if _, err := NewFormatter("Mars/Olympus_Mons"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}

func TestNowIsUTC(t *testing.T) {
	if Now().Location() != time.UTC {
		t.Fatalf("expected Now to be UTC")
	}
}
