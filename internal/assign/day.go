package assign

import (
	"fmt"
	"sort"

	"github.com/zulandar/manshift/internal/models"
	"github.com/zulandar/manshift/internal/timeline"
	"gorm.io/gorm"
)

// WorkerDay is one worker's rendered daily schedule: already-timed rows
// kept as immovable entries, untimed allocations packed into the gaps.
type WorkerDay struct {
	WorkerName string               `json:"worker_name"`
	TotalMH    float64              `json:"total_mh"`
	Schedule   []timeline.Placement `json:"schedule"`
}

// BuildWorkerDay assembles a worker's full-day timeline. Timed assignments
// become fixed entries and obstacles; untimed ones are fed to the
// calculator in row order; the merged result is sorted by normalized start
// minute so night-shift entries past midnight land after the evening ones.
// Read path only: nothing is persisted.
func BuildWorkerDay(db *gorm.DB, sessionID, workerID uint) (*WorkerDay, error) {
	var session models.Session
	if err := db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("assign: session %d: %w", sessionID, err)
	}
	var worker models.Worker
	if err := db.Where("session_id = ?", sessionID).First(&worker, workerID).Error; err != nil {
		return nil, fmt.Errorf("assign: worker %d: %w", workerID, err)
	}
	shift := timeline.ShiftKind(session.ShiftKind)

	var assigns []models.Assignment
	err := db.Preload("WorkItem").Where("worker_id = ?", workerID).Order("id").Find(&assigns).Error
	if err != nil {
		return nil, fmt.Errorf("assign: load assignments: %w", err)
	}

	var fixed []timeline.Placement
	var occupied []timeline.Interval
	var floating []timeline.Task
	total := 0.0

	for _, a := range assigns {
		wo, op, desc, gibun := displayFields(&a)
		total += a.AllocatedMH

		if a.Timed() {
			fixed = append(fixed, timeline.Placement{
				WorkOrder:   wo,
				Op:          op,
				Description: desc,
				Gibun:       gibun,
				Hours:       a.DurationMH(),
				StartMin:    *a.StartMin,
				EndMin:      *a.EndMin,
				StartLabel:  timeline.FormatMinute(*a.StartMin),
				EndLabel:    timeline.FormatMinute(*a.EndMin),
				Fixed:       true,
			})
			occupied = append(occupied, timeline.Interval{Start: *a.StartMin, End: *a.EndMin})
			continue
		}
		floating = append(floating, timeline.Task{
			WorkOrder:   wo,
			Op:          op,
			Description: desc,
			Gibun:       gibun,
			Hours:       a.AllocatedMH,
		})
	}

	schedule := fixed
	if len(floating) > 0 {
		calc := timeline.NewCalculator(floating, occupied, shift)
		schedule = append(schedule, calc.Calculate()...)
	}
	sort.SliceStable(schedule, func(i, j int) bool {
		return timeline.NormalizeForShift(schedule[i].StartMin, shift) <
			timeline.NormalizeForShift(schedule[j].StartMin, shift)
	})

	return &WorkerDay{
		WorkerName: worker.Name,
		TotalMH:    round2(total),
		Schedule:   schedule,
	}, nil
}

// displayFields resolves what a schedule row shows for each assignment
// category: break and direct rows have no work item and use their code as
// the description.
func displayFields(a *models.Assignment) (wo, op, desc, gibun string) {
	switch a.Category {
	case models.CategoryBreak:
		return "KANBI", "", a.Code, "-"
	case models.CategoryDirect:
		return "DIRECT", "", a.Code, "-"
	}
	if a.WorkItem != nil {
		return a.WorkItem.WorkOrder, a.WorkItem.Op, a.WorkItem.Description, a.WorkItem.Gibun
	}
	return "", "", a.Code, ""
}
