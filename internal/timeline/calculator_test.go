package timeline

import (
	"math"
	"testing"
)

func TestCalculate_NoObstacles(t *testing.T) {
	calc := NewCalculator([]Task{
		{WorkOrder: "WO-1", Hours: 2},
	}, nil, ShiftDay)
	got := calc.Calculate()

	if len(got) != 1 {
		t.Fatalf("placements = %d, want 1", len(got))
	}
	p := got[0]
	if p.StartMin != 480 || p.EndMin != 600 {
		t.Errorf("placement = [%d,%d), want [480,600)", p.StartMin, p.EndMin)
	}
	if p.StartLabel != "08:00" || p.EndLabel != "10:00" {
		t.Errorf("labels = %s-%s, want 08:00-10:00", p.StartLabel, p.EndLabel)
	}
	if p.Hours != 2 {
		t.Errorf("hours = %v, want 2", p.Hours)
	}
}

// A two-hour task split around a 09:00-10:00 break: one hour before, one
// hour after.
func TestCalculate_SplitAroundObstacle(t *testing.T) {
	calc := NewCalculator(
		[]Task{{WorkOrder: "WO-1", Hours: 2}},
		[]Interval{{540, 600}},
		ShiftDay,
	)
	got := calc.Calculate()

	if len(got) != 2 {
		t.Fatalf("placements = %d, want 2: %+v", len(got), got)
	}
	if got[0].StartMin != 480 || got[0].EndMin != 540 {
		t.Errorf("first piece = [%d,%d), want [480,540)", got[0].StartMin, got[0].EndMin)
	}
	if got[1].StartMin != 600 || got[1].EndMin != 660 {
		t.Errorf("second piece = [%d,%d), want [600,660)", got[1].StartMin, got[1].EndMin)
	}
	if total := got[0].Hours + got[1].Hours; total != 2 {
		t.Errorf("total hours = %v, want 2", total)
	}
}

func TestCalculate_TruncatedAtShiftEnd(t *testing.T) {
	// 13 hours of work in a 12-hour window: only 12 get placed.
	calc := NewCalculator([]Task{{Hours: 13}}, nil, ShiftDay)
	got := calc.Calculate()

	if len(got) != 1 {
		t.Fatalf("placements = %d, want 1", len(got))
	}
	if got[0].EndMin != 1200 {
		t.Errorf("end = %d, want shift end 1200", got[0].EndMin)
	}
	if got[0].Hours != 12 {
		t.Errorf("hours = %v, want 12", got[0].Hours)
	}
}

func TestCalculate_ZeroDurationSkipped(t *testing.T) {
	calc := NewCalculator([]Task{
		{WorkOrder: "zero", Hours: 0},
		{WorkOrder: "neg", Hours: -1},
		{WorkOrder: "real", Hours: 1},
	}, nil, ShiftDay)
	got := calc.Calculate()

	if len(got) != 1 {
		t.Fatalf("placements = %d, want 1: %+v", len(got), got)
	}
	if got[0].WorkOrder != "real" {
		t.Errorf("work order = %q, want %q", got[0].WorkOrder, "real")
	}
}

func TestCalculate_AbuttingObstacleJumpsWithoutZeroPlacement(t *testing.T) {
	// Obstacle starts exactly at the shift start: cursor jumps, no
	// zero-length placement.
	calc := NewCalculator(
		[]Task{{Hours: 1}},
		[]Interval{{480, 540}},
		ShiftDay,
	)
	got := calc.Calculate()

	if len(got) != 1 {
		t.Fatalf("placements = %d, want 1: %+v", len(got), got)
	}
	if got[0].StartMin != 540 || got[0].EndMin != 600 {
		t.Errorf("placement = [%d,%d), want [540,600)", got[0].StartMin, got[0].EndMin)
	}
}

func TestCalculate_NightShift(t *testing.T) {
	// A break at 01:00-01:30 arrives as wall-clock minutes and must act as
	// an obstacle at 1500-1530.
	calc := NewCalculator(
		[]Task{{Hours: 6}},
		[]Interval{{60, 90}},
		ShiftNight,
	)
	got := calc.Calculate()

	if len(got) != 2 {
		t.Fatalf("placements = %d, want 2: %+v", len(got), got)
	}
	if got[0].StartMin != 1200 || got[0].EndMin != 1500 {
		t.Errorf("first piece = [%d,%d), want [1200,1500)", got[0].StartMin, got[0].EndMin)
	}
	if got[1].StartMin != 1530 || got[1].EndMin != 1590 {
		t.Errorf("second piece = [%d,%d), want [1530,1590)", got[1].StartMin, got[1].EndMin)
	}
	if got[0].StartLabel != "20:00" {
		t.Errorf("start label = %q, want 20:00", got[0].StartLabel)
	}
	if got[1].StartLabel != "01:30" {
		t.Errorf("second start label = %q, want 01:30", got[1].StartLabel)
	}
}

// No placement may overlap another placement or an obstacle, and every
// placement must stay inside the shift window.
func TestCalculate_NoOverlapInvariant(t *testing.T) {
	tasks := []Task{{Hours: 3.5}, {Hours: 2}, {Hours: 4.2}, {Hours: 1.1}}
	fixed := []Interval{{540, 600}, {720, 780}, {900, 915}}
	calc := NewCalculator(tasks, fixed, ShiftDay)
	got := calc.Calculate()

	all := make([]Interval, 0, len(got)+len(fixed))
	for _, p := range got {
		if p.StartMin < 480 || p.EndMin > 1200 {
			t.Errorf("placement [%d,%d) outside shift window", p.StartMin, p.EndMin)
		}
		all = append(all, Interval{p.StartMin, p.EndMin})
	}
	all = append(all, fixed...)

	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[i].Overlaps(all[j]) {
				t.Errorf("intervals %v and %v overlap", all[i], all[j])
			}
		}
	}
}

func TestCalculate_FractionalHoursRounded(t *testing.T) {
	// 0.1h rounds to 6 minutes.
	calc := NewCalculator([]Task{{Hours: 0.1}}, nil, ShiftDay)
	got := calc.Calculate()

	if len(got) != 1 {
		t.Fatalf("placements = %d, want 1", len(got))
	}
	if got[0].EndMin-got[0].StartMin != 6 {
		t.Errorf("duration = %d min, want 6", got[0].EndMin-got[0].StartMin)
	}
	if math.Abs(got[0].Hours-0.1) > 1e-9 {
		t.Errorf("hours = %v, want 0.1", got[0].Hours)
	}
}
