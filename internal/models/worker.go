package models

// Worker is a person available for assignment within one session.
// UsedMH is denormalized: it is recomputed from assignment rows by the
// totals refresher and never written by hand.
type Worker struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	SessionID uint    `gorm:"not null;uniqueIndex:idx_worker_session_name"`
	Name      string  `gorm:"size:50;not null;uniqueIndex:idx_worker_session_name"`
	LimitMH   float64 `gorm:"default:9"`
	UsedMH    float64 `gorm:"default:0"`

	Session     Session      `gorm:"foreignKey:SessionID"`
	Assignments []Assignment `gorm:"foreignKey:WorkerID;constraint:OnDelete:CASCADE"`
}
