// Package progress turns operator-entered progress values into watched seconds.
//
// Accepted forms, tried in order:
//
//	50%       percentage of the video's duration (0-100)
//	1:20:10   H:MM:SS
//	5:30      M:SS
//	42        raw seconds
package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mirava/internal/state"
)

// ParseError reports a progress value that could not be resolved.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid progress format: '%s' (%s)", e.Input, e.Reason)
}

// Resolve converts input into watched seconds for a video of durationSec.
// The result is not clamped; see Clamp.
func Resolve(input string, durationSec int64) (int64, error) {
	switch {
	case strings.Contains(input, "%"):
		pct, ok := leadingInt(input)
		if !ok {
			return 0, &ParseError{Input: input, Reason: "percentage needs a leading number"}
		}
		if pct < 0 || pct > 100 {
			return 0, &ParseError{Input: input, Reason: "percentage must be between 0 and 100"}
		}
		return durationSec/100*pct + durationSec%100*pct/100, nil

	case strings.Contains(input, ":"):
		fields := strings.Split(input, ":")
		if len(fields) != 2 && len(fields) != 3 {
			return 0, &ParseError{Input: input, Reason: "expected H:MM:SS or M:SS"}
		}
		var total int64
		for _, f := range fields {
			n, err := parseDigits(f)
			if err != nil {
				return 0, &ParseError{Input: input, Reason: "expected H:MM:SS or M:SS"}
			}
			if total > (math.MaxInt64-n)/60 {
				return 0, &ParseError{Input: input, Reason: "value out of range"}
			}
			total = total*60 + n
		}
		return total, nil

	default:
		n, err := parseDigits(input)
		if err != nil {
			return 0, &ParseError{Input: input, Reason: "expected seconds, a timecode or a percentage"}
		}
		return n, nil
	}
}

// Clamp caps watched at durationSec when the duration is known.
func Clamp(watched, durationSec int64) int64 {
	if watched < 0 {
		return 0
	}
	if durationSec > 0 && watched > durationSec {
		return durationSec
	}
	return watched
}

// Complete returns the watched value that marks a video as fully watched.
func Complete(durationSec int64) int64 {
	if durationSec > 0 {
		return durationSec
	}
	return state.WatchedSentinel
}

// leadingInt reads an optional sign and the digits at the start of s after
// leading spaces, ignoring the rest.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDigits accepts a non-empty run of ASCII digits only.
func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-digit %q", s[i])
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
