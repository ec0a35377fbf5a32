// Package timeline provides the minute-of-day arithmetic and the pure
// schedule calculator used to pack a worker's allocations into a shift.
package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// ShiftKind selects the planning window.
type ShiftKind string

const (
	ShiftDay   ShiftKind = "DAY"
	ShiftNight ShiftKind = "NIGHT"
)

// Window returns the shift's [start, end) bounds in shift-relative minutes.
// The night window wraps past midnight, so its end exceeds 1440.
func (k ShiftKind) Window() (start, end int) {
	if k == ShiftNight {
		return 1200, 1920
	}
	return 480, 1200
}

// NormalizeForShift maps a wall-clock minute of day into shift-relative
// minutes. Minutes before the shift's start-of-day threshold belong to the
// next calendar day and get +1440, so 01:00 on a night shift sorts after
// 20:00 of the same shift.
func NormalizeForShift(minute int, kind ShiftKind) int {
	threshold, _ := kind.Window()
	if minute < threshold {
		return minute + 1440
	}
	return minute
}

// FormatMinute renders a shift-relative minute as HH:MM, reducing modulo
// 1440 except that exactly 1440 renders as the end-of-day marker 24:00.
func FormatMinute(minute int) string {
	if minute == 1440 {
		return "24:00"
	}
	m := ((minute % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseMinute parses an HH:MM string into a minute of day.
func ParseMinute(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("timeline: parse %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("timeline: parse %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("timeline: parse %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("timeline: parse %q: out of range", s)
	}
	return h*60 + m, nil
}
