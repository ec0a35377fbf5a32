package assign

import (
	"fmt"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// SyncGibunPriorities reconciles a session's priority rows with the gibun
// values its work items actually use: a row is created (at the end of the
// current order) for every new gibun, and rows whose gibun no longer
// appears on any item are pruned.
func SyncGibunPriorities(db *gorm.DB, sessionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var items []models.WorkItem
		if err := tx.Where("session_id = ?", sessionID).Order("sort_order, id").Find(&items).Error; err != nil {
			return fmt.Errorf("assign: load items: %w", err)
		}

		inUse := make(map[string]string) // normalized -> first-seen raw form
		for _, it := range items {
			key := models.NormalizeGibun(it.Gibun)
			if key == "" {
				continue
			}
			if _, ok := inUse[key]; !ok {
				inUse[key] = it.Gibun
			}
		}

		var rows []models.GibunPriority
		if err := tx.Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
			return fmt.Errorf("assign: load priorities: %w", err)
		}

		maxOrder := 0
		existing := make(map[string]bool, len(rows))
		for _, r := range rows {
			key := models.NormalizeGibun(r.Gibun)
			if _, used := inUse[key]; !used {
				if err := tx.Delete(&models.GibunPriority{}, r.ID).Error; err != nil {
					return fmt.Errorf("assign: prune priority %q: %w", r.Gibun, err)
				}
				continue
			}
			existing[key] = true
			if r.OrderNo != models.DefaultGibunOrder && r.OrderNo > maxOrder {
				maxOrder = r.OrderNo
			}
		}

		// New gibuns join at the end of the order, in item appearance order.
		for _, it := range items {
			key := models.NormalizeGibun(it.Gibun)
			if key == "" || existing[key] {
				continue
			}
			existing[key] = true
			maxOrder++
			row := models.GibunPriority{
				SessionID: sessionID,
				Gibun:     inUse[key],
				OrderNo:   maxOrder,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("assign: create priority %q: %w", row.Gibun, err)
			}
		}
		return nil
	})
}

// SetGibunPriority pins an explicit order for one gibun, creating the row
// if none exists yet.
func SetGibunPriority(db *gorm.DB, sessionID uint, gibun string, order int) error {
	key := models.NormalizeGibun(gibun)
	if key == "" {
		return fmt.Errorf("assign: empty gibun")
	}

	var rows []models.GibunPriority
	if err := db.Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		return fmt.Errorf("assign: load priorities: %w", err)
	}
	for i := range rows {
		if models.NormalizeGibun(rows[i].Gibun) == key {
			if err := db.Model(&rows[i]).Update("order_no", order).Error; err != nil {
				return fmt.Errorf("assign: update priority %q: %w", gibun, err)
			}
			return nil
		}
	}

	row := models.GibunPriority{SessionID: sessionID, Gibun: gibun, OrderNo: order}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("assign: create priority %q: %w", gibun, err)
	}
	return nil
}
