package assign

import (
	"fmt"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// AddBreak records a fixed break/administrative block for one worker.
// Minutes are wall-clock; an end at or before the start is taken as
// crossing midnight and shifted a day forward. Break rows never count
// toward the worker's productive total.
func AddBreak(db *gorm.DB, sessionID, workerID uint, startMin, endMin int, reason string) error {
	return addFixedEntry(db, sessionID, workerID, startMin, endMin, models.CategoryBreak, reason)
}

// AddDirect records a fixed free-text direct entry for one worker, with
// the label kept on the row's code field.
func AddDirect(db *gorm.DB, sessionID, workerID uint, startMin, endMin int, label string) error {
	return addFixedEntry(db, sessionID, workerID, startMin, endMin, models.CategoryDirect, label)
}

func addFixedEntry(db *gorm.DB, sessionID, workerID uint, startMin, endMin int, category, code string) error {
	var worker models.Worker
	if err := db.Where("session_id = ?", sessionID).First(&worker, workerID).Error; err != nil {
		return fmt.Errorf("assign: worker %d: %w", workerID, err)
	}

	if endMin <= startMin {
		endMin += 1440
	}
	duration := endMin - startMin
	if duration <= 0 {
		return fmt.Errorf("assign: entry duration must be positive")
	}

	row := models.Assignment{
		WorkerID:    workerID,
		Category:    category,
		Code:        code,
		AllocatedMH: round2(float64(duration) / 60.0),
		StartMin:    &startMin,
		EndMin:      &endMin,
		IsFixed:     true,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("assign: create %s entry: %w", category, err)
		}
		return refreshWorkerTotals(tx, sessionID)
	})
}

// UnpinManual removes the untimed allocation of a manual work item from a
// worker. Removing a pin that does not exist is a no-op.
func UnpinManual(db *gorm.DB, itemID, workerID uint) error {
	var item models.WorkItem
	if err := db.First(&item, itemID).Error; err != nil {
		return fmt.Errorf("assign: item %d: %w", itemID, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("work_item_id = ? AND worker_id = ? AND start_min IS NULL", itemID, workerID).
			Delete(&models.Assignment{}).Error
		if err != nil {
			return fmt.Errorf("assign: remove pinned row: %w", err)
		}
		return refreshWorkerTotals(tx, item.SessionID)
	})
}

// PinManual allocates hours of a manually pinned work item to a worker as
// an untimed row. At most one untimed row may exist per (item, worker)
// pair; a second pin for the same pair replaces the first.
func PinManual(db *gorm.DB, itemID, workerID uint, hours float64) error {
	if hours <= 0 {
		return fmt.Errorf("assign: pinned hours must be positive")
	}

	var item models.WorkItem
	if err := db.First(&item, itemID).Error; err != nil {
		return fmt.Errorf("assign: item %d: %w", itemID, err)
	}
	if !item.IsManual {
		return fmt.Errorf("assign: item %d is auto-assignable, pin it first", itemID)
	}
	var worker models.Worker
	if err := db.Where("session_id = ?", item.SessionID).First(&worker, workerID).Error; err != nil {
		return fmt.Errorf("assign: worker %d: %w", workerID, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("work_item_id = ? AND worker_id = ? AND start_min IS NULL", itemID, workerID).
			Delete(&models.Assignment{}).Error
		if err != nil {
			return fmt.Errorf("assign: replace pinned row: %w", err)
		}
		row := models.Assignment{
			WorkItemID:  &itemID,
			WorkerID:    workerID,
			Category:    models.CategoryNormal,
			AllocatedMH: round2(hours),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("assign: create pinned row: %w", err)
		}
		return refreshWorkerTotals(tx, item.SessionID)
	})
}
