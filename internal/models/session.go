package models

import "time"

// Shift kinds. A session's shift kind is fixed for its lifetime and
// determines the planning window (DAY 08:00-20:00, NIGHT 20:00-08:00).
const (
	ShiftDay   = "DAY"
	ShiftNight = "NIGHT"
)

// Session is one scheduling run: a roster of workers and a list of work
// items planned together for a single shift.
type Session struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:100;not null"`
	ShiftKind string `gorm:"size:8;default:DAY"`
	IsActive  bool   `gorm:"default:true;index"`
	CreatedAt time.Time

	Workers []Worker   `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Items   []WorkItem `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
