package assign

import (
	"testing"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB creates an in-memory SQLite database with all required tables.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Session{},
		&models.Worker{},
		&models.WorkItem{},
		&models.GibunPriority{},
		&models.Assignment{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedSession(t *testing.T, db *gorm.DB, shiftKind string) *models.Session {
	t.Helper()
	s := &models.Session{Name: "Section A", ShiftKind: shiftKind, IsActive: true}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

func seedWorker(t *testing.T, db *gorm.DB, sessionID uint, name string, limitMH float64) *models.Worker {
	t.Helper()
	w := &models.Worker{SessionID: sessionID, Name: name, LimitMH: limitMH}
	if err := db.Create(w).Error; err != nil {
		t.Fatalf("create worker %s: %v", name, err)
	}
	return w
}

func seedItem(t *testing.T, db *gorm.DB, sessionID uint, gibun, wo string, workMH float64) *models.WorkItem {
	t.Helper()
	item := &models.WorkItem{
		SessionID: sessionID,
		Gibun:     gibun,
		WorkOrder: wo,
		WorkMH:    workMH,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item %s: %v", wo, err)
	}
	return item
}

func itemAssignments(t *testing.T, db *gorm.DB, itemID uint) []models.Assignment {
	t.Helper()
	var rows []models.Assignment
	if err := db.Where("work_item_id = ?", itemID).Order("worker_id").Find(&rows).Error; err != nil {
		t.Fatalf("load assignments for item %d: %v", itemID, err)
	}
	return rows
}

func workerByID(t *testing.T, db *gorm.DB, id uint) *models.Worker {
	t.Helper()
	var w models.Worker
	if err := db.First(&w, id).Error; err != nil {
		t.Fatalf("load worker %d: %v", id, err)
	}
	return &w
}

func intPtr(v int) *int { return &v }
