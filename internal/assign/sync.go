package assign

import (
	"fmt"
	"math"

	"github.com/zulandar/manshift/internal/models"
	"github.com/zulandar/manshift/internal/timeline"
	"gorm.io/gorm"
)

// SyncSchedules finds, for every work item the distributor split across
// two or more workers, a common start time at which all participants are
// simultaneously free, so shared tasks begin together. Participants keep
// their own durations, so they may finish at different times. An item with
// no collision-free common slot before the shift ends is left untimed; the
// per-worker day view then packs it as a floating task.
func SyncSchedules(db *gorm.DB, sessionID uint) error {
	var session models.Session
	if err := db.First(&session, sessionID).Error; err != nil {
		return fmt.Errorf("assign: session %d: %w", sessionID, err)
	}
	shift := timeline.ShiftKind(session.ShiftKind)
	ws, we := shift.Window()

	return db.Transaction(func(tx *gorm.DB) error {
		var workers []models.Worker
		if err := tx.Where("session_id = ?", sessionID).Find(&workers).Error; err != nil {
			return fmt.Errorf("assign: load workers: %w", err)
		}
		workerIDs := make([]uint, len(workers))
		for i, w := range workers {
			workerIDs[i] = w.ID
		}
		if len(workerIDs) == 0 {
			return nil
		}

		var assigns []models.Assignment
		if err := tx.Where("worker_id IN ?", workerIDs).Order("id").Find(&assigns).Error; err != nil {
			return fmt.Errorf("assign: load assignments: %w", err)
		}

		// Each worker's obstacle list: every row that already carries a
		// concrete time range, normalized and merged for the shift.
		obstacles := make(map[uint][]timeline.Interval)
		for _, a := range assigns {
			if a.Timed() {
				obstacles[a.WorkerID] = append(obstacles[a.WorkerID], timeline.Interval{Start: *a.StartMin, End: *a.EndMin})
			}
		}
		for id, raw := range obstacles {
			obstacles[id] = timeline.NormalizeIntervals(raw, shift)
		}

		// Untimed distributor output grouped by work item.
		byItem := make(map[uint][]*models.Assignment)
		for i := range assigns {
			a := &assigns[i]
			if a.WorkItemID != nil && !a.Timed() && a.Category == models.CategoryNormal {
				byItem[*a.WorkItemID] = append(byItem[*a.WorkItemID], a)
			}
		}

		shared := make([]uint, 0, len(byItem))
		for itemID, group := range byItem {
			if len(group) > 1 {
				shared = append(shared, itemID)
			}
		}
		if len(shared) == 0 {
			return nil
		}

		// Place shared items in the same order the distributor consumed
		// them, so higher-priority work claims the earlier common slots.
		var items []models.WorkItem
		if err := tx.Where("id IN ?", shared).Find(&items).Error; err != nil {
			return fmt.Errorf("assign: load shared items: %w", err)
		}
		prio, err := loadPriorities(tx, sessionID)
		if err != nil {
			return err
		}
		orderItems(items, prio)

		for _, item := range items {
			group := byItem[item.ID]

			durations := make([]int, len(group))
			maxDur := 0
			for i, a := range group {
				durations[i] = int(math.Round(a.AllocatedMH * 60))
				if durations[i] > maxDur {
					maxDur = durations[i]
				}
			}
			if maxDur <= 0 {
				continue
			}

			start, ok := findCommonStart(group, durations, maxDur, obstacles, ws, we)
			if !ok {
				continue
			}

			for i, a := range group {
				end := start + durations[i]
				if durations[i] <= 0 {
					continue
				}
				updates := map[string]interface{}{"start_min": start, "end_min": end}
				if err := tx.Model(a).Updates(updates).Error; err != nil {
					return fmt.Errorf("assign: time assignment %d: %w", a.ID, err)
				}
				obstacles[a.WorkerID] = append(obstacles[a.WorkerID], timeline.Interval{Start: start, End: end})
			}
		}

		return refreshWorkerTotals(tx, sessionID)
	})
}

// findCommonStart forward-scans from the shift start for the first minute
// at which every participant's own duration fits without touching that
// participant's obstacles. On a collision the cursor jumps to the furthest
// colliding obstacle end among all participants.
func findCommonStart(group []*models.Assignment, durations []int, maxDur int, obstacles map[uint][]timeline.Interval, ws, we int) (int, bool) {
	cursor := ws
	for cursor+maxDur <= we {
		jump := -1
		for i, a := range group {
			span := timeline.Interval{Start: cursor, End: cursor + durations[i]}
			for _, ob := range obstacles[a.WorkerID] {
				if span.Overlaps(ob) && ob.End > jump {
					jump = ob.End
				}
			}
		}
		if jump < 0 {
			return cursor, true
		}
		cursor = jump
	}
	return 0, false
}
