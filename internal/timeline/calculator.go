package timeline

import "math"

// Task is a floating piece of work awaiting placement.
type Task struct {
	WorkOrder   string
	Op          string
	Description string
	Gibun       string
	Hours       float64
}

// Placement is one scheduled run of minutes for a task. A task longer than
// the free time before the next obstacle is split into several placements.
type Placement struct {
	WorkOrder   string  `json:"work_order"`
	Op          string  `json:"op"`
	Description string  `json:"description"`
	Gibun       string  `json:"gibun"`
	Hours       float64 `json:"hours"`
	StartMin    int     `json:"start_min"`
	EndMin      int     `json:"end_min"`
	StartLabel  string  `json:"start_label"`
	EndLabel    string  `json:"end_label"`
	Fixed       bool    `json:"fixed"`
}

// Calculator packs floating tasks into the free time of a shift window
// around a set of fixed obstacles. It is a pure computation with no
// persistence side effects.
type Calculator struct {
	tasks     []Task
	obstacles []Interval
	shift     ShiftKind
}

// NewCalculator builds a calculator for one worker's day. Fixed intervals
// are normalized, clamped to the shift window and merged before packing.
func NewCalculator(tasks []Task, fixed []Interval, shift ShiftKind) *Calculator {
	return &Calculator{
		tasks:     tasks,
		obstacles: NormalizeIntervals(fixed, shift),
		shift:     shift,
	}
}

// Calculate places every task, in input order, into the remaining free
// time of the shift. A task that cannot fully fit before the shift ends is
// truncated: the worker genuinely runs out of shift time, which is not an
// error. Output order follows input order, not start-time order.
func (c *Calculator) Calculate() []Placement {
	ws, we := c.shift.Window()
	cursor := ws
	var results []Placement

	for _, task := range c.tasks {
		remaining := int(math.Round(task.Hours * 60))
		if remaining <= 0 {
			continue
		}

		for remaining > 0 && cursor < we {
			// Jump out of any obstacle covering the cursor.
			if ob, ok := c.obstacleAt(cursor); ok {
				cursor = ob.End
				continue
			}

			// Free run up to the next obstacle or the shift end.
			limit := we
			for _, ob := range c.obstacles {
				if ob.Start > cursor {
					if ob.Start < limit {
						limit = ob.Start
					}
					break
				}
			}
			if limit <= cursor {
				cursor = limit
				continue
			}

			use := remaining
			if run := limit - cursor; run < use {
				use = run
			}
			results = append(results, Placement{
				WorkOrder:   task.WorkOrder,
				Op:          task.Op,
				Description: task.Description,
				Gibun:       task.Gibun,
				Hours:       math.Round(float64(use)/60*100) / 100,
				StartMin:    cursor,
				EndMin:      cursor + use,
				StartLabel:  FormatMinute(cursor),
				EndLabel:    FormatMinute(cursor + use),
			})
			cursor += use
			remaining -= use
		}
	}
	return results
}

// obstacleAt returns the obstacle covering the given minute, if any.
// An obstacle that exactly abuts the minute does not cover it.
func (c *Calculator) obstacleAt(minute int) (Interval, bool) {
	for _, ob := range c.obstacles {
		if minute >= ob.Start && minute < ob.End {
			return ob, true
		}
		if ob.Start > minute {
			break
		}
	}
	return Interval{}, false
}
