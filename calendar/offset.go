package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// OffsetKind distinguishes how an Offset resolves wall-clock fields.
type OffsetKind uint8

const (
	OffsetUTC OffsetKind = iota
	OffsetFixed
	OffsetZone
	OffsetLocal
)

func (k OffsetKind) String() string {
	switch k {
	case OffsetUTC:
		return "utc"
	case OffsetFixed:
		return "fixed"
	case OffsetZone:
		return "zone"
	case OffsetLocal:
		return "local"
	default:
		return "unknown"
	}
}

// secondsPerDay bounds fixed offsets: |offset| must be strictly less.
const secondsPerDay = 86400

// Offset is the UTC deviation attached to a Time. The zero value is UTC.
type Offset struct {
	kind    OffsetKind
	seconds int32
	loc     *time.Location
}

// UTC returns the UTC offset.
func UTC() Offset {
	return Offset{kind: OffsetUTC}
}

// Fixed returns an offset of the given number of seconds east of UTC.
func Fixed(seconds int32) (Offset, error) {
	if seconds <= -secondsPerDay || seconds >= secondsPerDay {
		return Offset{}, newError(ErrInvalidOffset, "utc_offset out of range")
	}
	return Offset{
		kind:    OffsetFixed,
		seconds: seconds,
		loc:     time.FixedZone(formatFixed(seconds), int(seconds)),
	}, nil
}

// Zone returns an offset resolved through the IANA zone database.
func Zone(name string) (Offset, error) {
	if name == "" || name == "Local" {
		return Offset{}, invalidOffsetError(name, ErrUnknownZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Offset{}, invalidOffsetError(name, ErrUnknownZone)
	}
	return Offset{kind: OffsetZone, loc: loc}, nil
}

// Local returns the local offset backed by loc. A nil loc means the
// process-wide time.Local.
func Local(loc *time.Location) Offset {
	if loc == nil {
		loc = time.Local
	}
	return Offset{kind: OffsetLocal, loc: loc}
}

// Kind reports how the offset resolves.
func (o Offset) Kind() OffsetKind {
	return o.kind
}

// IsUTC reports whether o is the UTC offset (not merely a zero fixed offset).
func (o Offset) IsUTC() bool {
	return o.kind == OffsetUTC
}

// FixedSeconds returns the seconds east of UTC for a fixed offset.
func (o Offset) FixedSeconds() (int32, bool) {
	if o.kind != OffsetFixed {
		return 0, false
	}
	return o.seconds, true
}

// Location returns the Go location used for field decomposition.
func (o Offset) Location() *time.Location {
	if o.kind == OffsetUTC || o.loc == nil {
		return time.UTC
	}
	return o.loc
}

// ZoneName returns the IANA name for zone and local offsets.
func (o Offset) ZoneName() string {
	switch o.kind {
	case OffsetZone, OffsetLocal:
		return o.Location().String()
	case OffsetUTC:
		return "UTC"
	default:
		return ""
	}
}

func (o Offset) String() string {
	switch o.kind {
	case OffsetUTC:
		return "UTC"
	case OffsetFixed:
		return formatFixed(o.seconds)
	default:
		return o.Location().String()
	}
}

// ParseOffset resolves the textual forms accepted for an `in:` option:
// "UTC", "Z", military letters, "+HH", "+HHMM", "+HH:MM", "+HH:MM:SS"
// and IANA zone names.
func ParseOffset(s string) (Offset, error) {
	switch s {
	case "UTC", "Z", "-00:00":
		return UTC(), nil
	case "":
		return Offset{}, invalidOffsetError(s, ErrInvalidOffset)
	}
	if len(s) == 1 {
		return militaryOffset(s)
	}
	if s[0] == '+' || s[0] == '-' {
		secs, ok := parseNumericOffset(s)
		if !ok {
			return Offset{}, invalidOffsetError(s, ErrInvalidOffset)
		}
		return Fixed(secs)
	}
	return Zone(s)
}

func militaryOffset(s string) (Offset, error) {
	c := s[0]
	var hours int32
	switch {
	case c >= 'A' && c <= 'I':
		hours = int32(c-'A') + 1
	case c >= 'K' && c <= 'M':
		hours = int32(c-'K') + 10
	case c >= 'N' && c <= 'Y':
		hours = -(int32(c-'N') + 1)
	case c == 'Z':
		return UTC(), nil
	default:
		return Offset{}, invalidOffsetError(s, ErrInvalidOffset)
	}
	return Fixed(hours * 3600)
}

func parseNumericOffset(s string) (int32, bool) {
	sign := int32(1)
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]

	var parts []string
	switch {
	case strings.Contains(body, ":"):
		parts = strings.Split(body, ":")
		if len(parts) > 3 {
			return 0, false
		}
	case len(body) == 2:
		parts = []string{body}
	case len(body) == 4:
		parts = []string{body[:2], body[2:]}
	case len(body) == 6:
		parts = []string{body[:2], body[2:4], body[4:]}
	default:
		return 0, false
	}

	limits := []int{24, 60, 60}
	scale := []int32{3600, 60, 1}
	var total int32
	for i, p := range parts {
		if len(p) != 2 || !isDigit(p[0]) || !isDigit(p[1]) {
			return 0, false
		}
		n := int(p[0]-'0')*10 + int(p[1]-'0')
		if n >= limits[i] {
			return 0, false
		}
		total += int32(n) * scale[i]
	}
	return sign * total, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func invalidOffsetError(s string, kind error) error {
	return newError(kind, fmt.Sprintf(`"+HH:MM", "-HH:MM", "UTC" or "A".."I","K".."Z" expected for utc_offset: %s`, s))
}

func formatFixed(seconds int32) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
