package assign

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// SlotUnit is the distribution granule in hours: work is dealt out in
// 0.1h (6 minute) slots so unfairness is bounded by one slot.
const SlotUnit = 0.1

// loadEpsilon bounds float drift when comparing accumulated loads.
const loadEpsilon = 0.001

// AutoAssign runs the fair-share distributor for one session: it deletes
// every assignment of the auto-assignable work items and regenerates the
// whole set, spreading each item's hours across workers in SlotUnit slots.
// The rewrite happens inside a single transaction, so readers never see a
// half-rebuilt assignment set.
//
// rng drives the tie-break between equally loaded workers. The random pick
// is a deliberate fairness mechanism: without it the first-sorted worker
// soaks up every tie. Pass nil for a time-seeded source.
func AutoAssign(db *gorm.DB, sessionID uint, rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var session models.Session
	if err := db.First(&session, sessionID).Error; err != nil {
		return fmt.Errorf("assign: session %d: %w", sessionID, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var workers []models.Worker
		if err := tx.Where("session_id = ?", sessionID).Order("id").Find(&workers).Error; err != nil {
			return fmt.Errorf("assign: load workers: %w", err)
		}
		if len(workers) == 0 {
			return nil
		}

		var items []models.WorkItem
		if err := tx.Where("session_id = ?", sessionID).Find(&items).Error; err != nil {
			return fmt.Errorf("assign: load items: %w", err)
		}

		autoItems := make([]models.WorkItem, 0, len(items))
		autoIDs := make(map[uint]bool)
		for _, it := range items {
			if !it.IsManual {
				autoItems = append(autoItems, it)
				autoIDs[it.ID] = true
			}
		}

		// Starting load per worker: everything outside the auto-assignable
		// set counts — manual pins, breaks, direct entries. Timed rows by
		// their minute range, untimed rows by their allocated hours.
		workerIDs := make([]uint, len(workers))
		for i, w := range workers {
			workerIDs[i] = w.ID
		}
		var existing []models.Assignment
		if err := tx.Where("worker_id IN ?", workerIDs).Find(&existing).Error; err != nil {
			return fmt.Errorf("assign: load assignments: %w", err)
		}

		// Per-run accumulator keyed by worker ID; never persisted on the
		// worker row itself.
		load := make(map[uint]float64, len(workers))
		for _, a := range existing {
			if a.WorkItemID != nil && autoIDs[*a.WorkItemID] {
				continue
			}
			load[a.WorkerID] += a.DurationMH()
		}

		// Full recompute: wipe the auto-assignable set before rebuilding.
		if len(autoIDs) > 0 {
			ids := make([]uint, 0, len(autoIDs))
			for id := range autoIDs {
				ids = append(ids, id)
			}
			if err := tx.Where("work_item_id IN ?", ids).Delete(&models.Assignment{}).Error; err != nil {
				return fmt.Errorf("assign: clear auto assignments: %w", err)
			}
		}

		prio, err := loadPriorities(tx, sessionID)
		if err != nil {
			return err
		}
		orderItems(autoItems, prio)

		var rows []models.Assignment
		for i := range autoItems {
			item := &autoItems[i]
			if item.WorkMH <= 0 {
				continue
			}

			totalSlots := int(math.Round(item.WorkMH / SlotUnit))
			alloc := make(map[uint]float64, len(workers))

			for s := 0; s < totalSlots; s++ {
				candidates := make([]*models.Worker, 0, len(workers))
				for j := range workers {
					if load[workers[j].ID] < workers[j].LimitMH {
						candidates = append(candidates, &workers[j])
					}
				}
				// Everyone saturated: overload the least loaded rather
				// than leave work on the table.
				if len(candidates) == 0 {
					for j := range workers {
						candidates = append(candidates, &workers[j])
					}
				}

				minLoad := load[candidates[0].ID]
				for _, c := range candidates[1:] {
					if load[c.ID] < minLoad {
						minLoad = load[c.ID]
					}
				}
				var tied []*models.Worker
				for _, c := range candidates {
					if load[c.ID] <= minLoad+loadEpsilon {
						tied = append(tied, c)
					}
				}

				pick := tied[rng.Intn(len(tied))]
				load[pick.ID] += SlotUnit
				alloc[pick.ID] += SlotUnit
			}

			itemID := item.ID
			for j := range workers {
				amount := alloc[workers[j].ID]
				if amount > loadEpsilon {
					rows = append(rows, models.Assignment{
						WorkItemID:  &itemID,
						WorkerID:    workers[j].ID,
						Category:    models.CategoryNormal,
						AllocatedMH: round2(amount),
					})
				}
			}
		}

		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 200).Error; err != nil {
				return fmt.Errorf("assign: create assignments: %w", err)
			}
		}

		return refreshWorkerTotals(tx, sessionID)
	})
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
