package timeline

import "sort"

// Interval is a half-open [Start, End) minute range.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// NormalizeIntervals maps raw wall-clock intervals into the shift's
// relative minute space, clamps them to the shift window, drops intervals
// that fall entirely outside it, and merges overlapping or adjacent ones
// into a sorted obstacle list.
func NormalizeIntervals(raw []Interval, kind ShiftKind) []Interval {
	ws, we := kind.Window()
	threshold := ws

	var adjusted []Interval
	for _, iv := range raw {
		start, end := iv.Start, iv.End
		// An end before its start crosses midnight.
		if end < start {
			end += 1440
		}
		// Early-morning times belong to the next calendar day.
		if start < threshold {
			start += 1440
			if end < start {
				end += 1440
			}
		}
		if end < threshold {
			end += 1440
		}
		// Clamp to the shift window.
		if start < ws {
			start = ws
		}
		if end > we {
			end = we
		}
		if end <= start {
			continue
		}
		adjusted = append(adjusted, Interval{Start: start, End: end})
	}

	sort.Slice(adjusted, func(i, j int) bool { return adjusted[i].Start < adjusted[j].Start })

	var merged []Interval
	for _, iv := range adjusted {
		if n := len(merged); n > 0 && iv.Start <= merged[n-1].End {
			if iv.End > merged[n-1].End {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
