package db

import (
	"fmt"
	"time"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// PurgeHistory deletes inactive sessions created before the cutoff,
// together with their workers, items, priorities and assignments. Active
// sessions are never touched regardless of age. With dryRun the count is
// returned without deleting anything.
func PurgeHistory(db *gorm.DB, cutoff time.Time, dryRun bool) (int64, error) {
	var ids []uint
	err := db.Model(&models.Session{}).
		Where("is_active = ? AND created_at < ?", false, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("db: find purgeable sessions: %w", err)
	}
	if dryRun || len(ids) == 0 {
		return int64(len(ids)), nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		workerIDs := tx.Model(&models.Worker{}).Select("id").Where("session_id IN ?", ids)
		if err := tx.Where("worker_id IN (?)", workerIDs).Delete(&models.Assignment{}).Error; err != nil {
			return fmt.Errorf("db: purge assignments: %w", err)
		}
		for _, m := range []interface{}{&models.GibunPriority{}, &models.WorkItem{}, &models.Worker{}} {
			if err := tx.Where("session_id IN ?", ids).Delete(m).Error; err != nil {
				return fmt.Errorf("db: purge session children: %w", err)
			}
		}
		if err := tx.Delete(&models.Session{}, ids).Error; err != nil {
			return fmt.Errorf("db: purge sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
