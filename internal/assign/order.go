// Package assign implements the fair-share distributor, the co-assignment
// synchronizer and the worker totals refresher that together produce a
// session's assignment set.
package assign

import (
	"fmt"
	"sort"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// loadPriorities returns the session's gibun priority map keyed by the
// normalized gibun value.
func loadPriorities(tx *gorm.DB, sessionID uint) (map[string]int, error) {
	var rows []models.GibunPriority
	if err := tx.Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("assign: load priorities: %w", err)
	}
	prio := make(map[string]int, len(rows))
	for _, r := range rows {
		prio[models.NormalizeGibun(r.Gibun)] = r.OrderNo
	}
	return prio, nil
}

// priorityFor looks up a gibun's order, defaulting when no row exists.
func priorityFor(prio map[string]int, gibun string) int {
	if p, ok := prio[models.NormalizeGibun(gibun)]; ok {
		return p
	}
	return models.DefaultGibunOrder
}

// orderItems sorts work items into distribution order: gibun priority
// ascending, then manual sort order, then required hours descending so
// large jobs land first and small ones fill the gaps, then ID as a stable
// tiebreak.
func orderItems(items []models.WorkItem, prio map[string]int) {
	sort.Slice(items, func(i, j int) bool {
		pi, pj := priorityFor(prio, items[i].Gibun), priorityFor(prio, items[j].Gibun)
		if pi != pj {
			return pi < pj
		}
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		if items[i].WorkMH != items[j].WorkMH {
			return items[i].WorkMH > items[j].WorkMH
		}
		return items[i].ID < items[j].ID
	})
}
