package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		kind    OffsetKind
		seconds int32
	}{
		{"UTC", OffsetUTC, 0},
		{"Z", OffsetUTC, 0},
		{"-00:00", OffsetUTC, 0},
		{"+09:00", OffsetFixed, 9 * 3600},
		{"-05:30", OffsetFixed, -(5*3600 + 30*60)},
		{"+0130", OffsetFixed, 5400},
		{"+02", OffsetFixed, 7200},
		{"+01:02:03", OffsetFixed, 3723},
		{"A", OffsetFixed, 3600},
		{"I", OffsetFixed, 9 * 3600},
		{"K", OffsetFixed, 10 * 3600},
		{"M", OffsetFixed, 12 * 3600},
		{"N", OffsetFixed, -3600},
		{"Y", OffsetFixed, -12 * 3600},
		{"Asia/Tokyo", OffsetZone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			off, err := ParseOffset(tt.in)
			if err != nil {
				t.Fatalf("ParseOffset(%q) failed: %v", tt.in, err)
			}
			if off.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, off.Kind())
			}
			if tt.kind == OffsetFixed {
				secs, _ := off.FixedSeconds()
				if secs != tt.seconds {
					t.Errorf("expected %d seconds, got %d", tt.seconds, secs)
				}
			}
		})
	}
}

func TestParseOffsetRejects(t *testing.T) {
	for _, in := range []string{"J", "+25:00", "+01:60", "+1", "+012", "nonsense/zone", "", "Local", "+01:00:00:00",
		"++100", "-+1:00", "+-1:00", "+1-:00", "+01:+5", "+ 1:00", "+0x:00"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseOffset(in)
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}
			var calErr *Error
			if !errors.As(err, &calErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if !errors.Is(err, ErrInvalidOffset) && !errors.Is(err, ErrUnknownZone) {
				t.Errorf("unexpected kind: %v", err)
			}
			if !strings.Contains(err.Error(), "expected for utc_offset") {
				t.Errorf("unexpected message: %s", err.Error())
			}
		})
	}
}

func TestFixedRange(t *testing.T) {
	if _, err := Fixed(86399); err != nil {
		t.Errorf("86399 should be accepted: %v", err)
	}
	for _, s := range []int32{86400, -86400, 100000} {
		if _, err := Fixed(s); !errors.Is(err, ErrInvalidOffset) {
			t.Errorf("%d: expected ErrInvalidOffset, got %v", s, err)
		}
	}
}

func TestOffsetString(t *testing.T) {
	off, _ := Fixed(-(3*3600 + 30*60))
	if off.String() != "-03:30" {
		t.Errorf("expected -03:30, got %s", off.String())
	}
	if UTC().String() != "UTC" {
		t.Errorf("expected UTC, got %s", UTC().String())
	}
	var zero Offset
	if !zero.IsUTC() {
		t.Error("zero offset should be UTC")
	}
}

func TestLocalOffset(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	off := Local(berlin)
	if off.Kind() != OffsetLocal {
		t.Errorf("expected local kind, got %v", off.Kind())
	}
	if off.Location() != berlin {
		t.Error("expected the configured location")
	}
	if Local(nil).Location() != time.Local {
		t.Error("nil location should fall back to time.Local")
	}
}
