package roast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxMinutes is the largest minute count whose total still fits in an int.
const maxMinutes = (math.MaxInt - 59) / 60

// ParseTimeToSeconds converts "MM:SS" into total seconds.
// Minutes are unbounded; seconds must be in [0,59]. Anything else returns
// ErrInvalidTime, which callers must not confuse with zero.
func ParseTimeToSeconds(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 || minutes > maxMinutes {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}

	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}

	return minutes*60 + seconds, nil
}

// FormatSecondsToTime renders seconds as zero-padded "MM:SS".
// The total is rounded to whole seconds before splitting, so a remainder
// that rounds up to 60 carries into the minutes. Values that are not finite
// or do not fit in an int64 render as "--:--".
func FormatSecondsToTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || math.Abs(seconds) >= math.MaxInt64 {
		return "--:--"
	}

	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	total := int64(math.Round(seconds))
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}
