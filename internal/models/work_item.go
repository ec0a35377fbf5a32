package models

import "strings"

// WorkItem is a unit of required work with a total duration in man-hours.
// Gibun is a free-text group key (a model/aircraft code); items are consumed
// by the distributor in gibun priority order. Items with IsManual set are
// pinned and never touched by the auto-assign pass.
type WorkItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	SessionID   uint   `gorm:"not null;index"`
	Gibun       string `gorm:"size:50;index"`
	WorkOrder   string `gorm:"size:100"`
	Op          string `gorm:"size:50"`
	Description string `gorm:"type:text"`
	WorkMH      float64
	IsManual    bool `gorm:"default:false"`
	SortOrder   int  `gorm:"default:0"`

	Session     Session      `gorm:"foreignKey:SessionID"`
	Assignments []Assignment `gorm:"foreignKey:WorkItemID;constraint:OnDelete:CASCADE"`
}

// NormalizeGibun folds a free-text gibun into its canonical map-key form.
// Priorities are joined to items by this string value, not a foreign key:
// an item may carry a gibun that has no priority row yet.
func NormalizeGibun(gibun string) string {
	return strings.ToLower(strings.TrimSpace(gibun))
}
