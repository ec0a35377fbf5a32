package main

import (
	"fmt"
	"strconv"
)

// parseID parses a positive decimal record ID from a CLI argument.
func parseID(arg, what string) (uint, error) {
	v, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return uint(v), nil
}

// formatMH renders man-hours with two decimals, the unit the shop plans in.
func formatMH(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// yesNo renders a boolean as a table cell.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "-"
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
