package datetime

import (
	"testing"
	"time"
)

func TestOffsetDays(t *testing.T) {
	base := MustParseTime(time.RFC3339, "2025-03-01T00:00:00Z")
	got := OffsetDays(base, 3)
	want := MustParseTime(time.RFC3339, "2025-03-04T00:00:00Z")
	if !got.Equal(want) {
		t.Errorf("OffsetDays(base, 3) = %v, want %v", got, want)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	base := MustParseTime(time.RFC3339, "2025-03-01T12:30:00Z")
	formatted := FormatRFC3339(base)
	parsed, err := ParseRFC3339(formatted)
	if err != nil {
		t.Fatalf("ParseRFC3339(%q) failed: %v", formatted, err)
	}
	if !parsed.Equal(base) {
		t.Errorf("round trip mismatch: got %v, want %v", parsed, base)
	}
}

func TestParseRFC3339Invalid(t *testing.T) {
	if _, err := ParseRFC3339("not-a-timestamp"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}
