package assign

import (
	"fmt"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// RefreshWorkerTotals recomputes every worker's denormalized UsedMH from
// the ground-truth assignment rows. Break and direct-entry rows are
// excluded: they are non-productive or separately tracked time and must
// not count against the capacity ceiling the distributor compares with.
// Idempotent; run after any assignment mutation.
func RefreshWorkerTotals(db *gorm.DB, sessionID uint) error {
	return refreshWorkerTotals(db, sessionID)
}

func refreshWorkerTotals(tx *gorm.DB, sessionID uint) error {
	var workers []models.Worker
	if err := tx.Where("session_id = ?", sessionID).Find(&workers).Error; err != nil {
		return fmt.Errorf("assign: load workers for totals: %w", err)
	}

	for i := range workers {
		var total float64
		err := tx.Model(&models.Assignment{}).
			Where("worker_id = ? AND category = ?", workers[i].ID, models.CategoryNormal).
			Select("COALESCE(SUM(allocated_mh), 0)").
			Scan(&total).Error
		if err != nil {
			return fmt.Errorf("assign: sum for worker %d: %w", workers[i].ID, err)
		}
		err = tx.Model(&workers[i]).Update("used_mh", round2(total)).Error
		if err != nil {
			return fmt.Errorf("assign: update totals for worker %d: %w", workers[i].ID, err)
		}
	}
	return nil
}
