package models

// Assignment categories. Break time ("kanbi") and free-text direct entries
// are tagged variants on the assignment itself rather than sentinel work
// item rows, so they need no shared container row per session.
const (
	CategoryNormal = "NORMAL"
	CategoryBreak  = "BREAK"
	CategoryDirect = "DIRECT"
)

// Assignment links a worker to some hours of work. Rows created by the
// distributor are untimed (nil StartMin/EndMin); the synchronizer and the
// manual entry paths write concrete minute ranges. Times are shift-relative
// minutes of day, so EndMin may exceed 1440 for next-day overflow on a
// night shift.
//
// WorkItemID is nil for BREAK and DIRECT rows; Code then carries the break
// reason or direct-entry label. For a given (work item, worker) pair at
// most one untimed row may exist; timed rows are exempt, a worker can have
// many distinct breaks.
type Assignment struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	WorkItemID  *uint   `gorm:"index"`
	WorkerID    uint    `gorm:"not null;index"`
	Category    string  `gorm:"size:8;default:NORMAL;index"`
	Code        string  `gorm:"size:50"`
	AllocatedMH float64 `gorm:"default:0"`
	StartMin    *int
	EndMin      *int
	IsFixed     bool `gorm:"default:false"`

	WorkItem *WorkItem `gorm:"foreignKey:WorkItemID"`
	Worker   Worker    `gorm:"foreignKey:WorkerID"`
}

// Timed reports whether the assignment carries a concrete minute range.
func (a *Assignment) Timed() bool {
	return a.StartMin != nil && a.EndMin != nil
}

// DurationMH returns the assignment's committed hours: the minute-range
// duration when timed, AllocatedMH otherwise.
func (a *Assignment) DurationMH() float64 {
	if a.Timed() {
		return float64(*a.EndMin-*a.StartMin) / 60.0
	}
	return a.AllocatedMH
}
