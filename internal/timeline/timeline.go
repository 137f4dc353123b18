// Package timeline maps between pixel space on a 24-hour hall timeline and
// clock times, and normalizes pointer input for the drag-and-drop editor.
package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the width of the timeline in minutes.
const MinutesPerDay = 24 * 60

// ParseClock parses "HH:MM:SS" (or "HH:MM") into minutes from midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes-from-midnight as "HH:MM:00". Values outside
// [0, 1440) wrap into the same day; seconds are always zeroed on placement.
func FormatClock(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// MinutesAtOffset converts a pointer's horizontal offset from the timeline
// element's left edge into minutes from midnight.
func MinutesAtOffset(offsetX, width float64) int {
	if width <= 0 {
		return 0
	}
	return int(math.Round(offsetX / width * MinutesPerDay))
}

// TimeAtOffset converts a drop position into a start time for the selected
// date, "HH:MM:00".
func TimeAtOffset(offsetX, width float64) string {
	return FormatClock(MinutesAtOffset(offsetX, width))
}

// DeltaMinutes converts a pointer's horizontal displacement from the drag's
// start X into a signed minute delta.
func DeltaMinutes(displacementX, width float64) int {
	if width <= 0 {
		return 0
	}
	return int(math.Round(displacementX / width * MinutesPerDay))
}

// ShiftClock moves a clock time by a signed minute delta, wrapping within
// the day rather than rolling to an adjacent date.
func ShiftClock(clock string, deltaMinutes int) (string, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes + deltaMinutes), nil
}

// Position returns a session's rendered left offset and width as
// percentages of the 24-hour timeline.
func Position(clock string, durationMinutes int) (leftPct, widthPct float64, err error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return 0, 0, err
	}
	leftPct = float64(minutes) / MinutesPerDay * 100
	widthPct = float64(durationMinutes) / MinutesPerDay * 100
	return leftPct, widthPct, nil
}
