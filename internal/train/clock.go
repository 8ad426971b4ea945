package train

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the modulus applied when rendering clocks.
const MinutesPerDay = 24 * 60

// MalformedScheduleError reports a departure clock that is not HH:MM.
type MalformedScheduleError struct {
	Clock string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed departure clock %q (want HH:MM)", e.Clock)
}

// ParseClock converts "HH:MM" into minutes after midnight. There is no
// timezone and no day rollover; "25:10" is 1510 minutes. Malformed input
// yields NaN and a *MalformedScheduleError.
func ParseClock(s string) (float64, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return math.NaN(), &MalformedScheduleError{Clock: s}
	}
	hh, err := clockPart(h)
	if err != nil {
		return math.NaN(), &MalformedScheduleError{Clock: s}
	}
	mm, err := clockPart(m)
	if err != nil {
		return math.NaN(), &MalformedScheduleError{Clock: s}
	}
	return float64(hh*60 + mm), nil
}

func clockPart(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// FormatClock renders minutes as HH:MM, wrapping at midnight.
func FormatClock(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return "--:--"
	}
	m := int(math.Floor(minutes)) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
