package models

// DefaultGibunOrder is the priority used for items whose gibun has no
// priority row.
const DefaultGibunOrder = 999

// GibunPriority orders work-item groups within a session. Lower OrderNo
// sorts first. Rows are created when a new gibun appears and pruned when
// no work item references the gibun any more.
type GibunPriority struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID uint   `gorm:"not null;uniqueIndex:idx_priority_session_gibun"`
	Gibun     string `gorm:"size:50;not null;uniqueIndex:idx_priority_session_gibun"`
	OrderNo   int    `gorm:"default:999"`

	Session Session `gorm:"foreignKey:SessionID"`
}
