package durations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/xhit/go-str2duration/v2"
)

var ErrInvalid = errors.New("invalid duration")

// unit names accepted in addition to the short forms, case-sensitive
var units = map[string]string{
	"nsec": "ns", "ns": "ns",
	"usec": "us", "us": "us", "µs": "us",
	"msec": "ms", "ms": "ms",
	"seconds": "s", "second": "s", "secs": "s", "sec": "s", "s": "s",
	"minutes": "m", "minute": "m", "mins": "m", "min": "m", "m": "m",
	"hours": "h", "hour": "h", "hrs": "h", "hr": "h", "h": "h",
	"days": "d", "day": "d", "d": "d",
	"weeks": "w", "week": "w", "w": "w",
}

// calendar units have no short form, they are averaged
var calendarUnits = map[string]time.Duration{
	"months": 2630016 * time.Second,
	"month":  2630016 * time.Second,
	"M":      2630016 * time.Second,
	"years":  31557600 * time.Second,
	"year":   31557600 * time.Second,
	"y":      31557600 * time.Second,
}

// Parse reads a sequence of number and unit pairs like "1min 30sec", "2h45m" or "1 day".
// A leading minus negates the whole duration.
func Parse(str string) (time.Duration, error) {
	rest := strings.TrimSpace(str)
	negative := false
	if strings.HasPrefix(rest, "-") {
		negative = true
		rest = strings.TrimSpace(rest[1:])
	}
	if rest == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, str)
	}
	if rest == "0" {
		return 0, nil
	}

	var normalized strings.Builder
	var calendar time.Duration
	for rest != "" {
		number, unit := "", ""
		number, rest = span(rest, func(r rune) bool {
			return r >= '0' && r <= '9' || r == '.'
		})
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		unit, rest = span(rest, unicode.IsLetter)
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if number == "" || unit == "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, str)
		}

		if short, ok := units[unit]; ok {
			normalized.WriteString(number)
			normalized.WriteString(short)
			continue
		}
		if length, ok := calendarUnits[unit]; ok {
			n, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalid, str)
			}
			calendar += time.Duration(n * float64(length))
			continue
		}
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalid, unit)
	}

	var d time.Duration
	if normalized.Len() > 0 {
		var err error
		d, err = str2duration.ParseDuration(normalized.String())
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, str)
		}
	}
	d += calendar
	if d < 0 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalid, str)
	}
	if negative {
		d = -d
	}
	return d, nil
}

func span(str string, pred func(rune) bool) (string, string) {
	i := 0
	for i < len(str) {
		r, size := utf8.DecodeRuneInString(str[i:])
		if !pred(r) {
			break
		}
		i += size
	}
	return str[:i], str[i:]
}
