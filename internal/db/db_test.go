package db

import (
	"strings"
	"testing"
	"time"

	"github.com/zulandar/manshift/internal/config"
	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}}
	gdb, err := Connect(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "default local",
			cfg:  config.DatabaseConfig{User: "root", Host: "127.0.0.1", Port: 3306, Name: "manshift"},
			want: "root:@tcp(127.0.0.1:3306)/manshift?parseTime=true",
		},
		{
			name: "credentialed remote",
			cfg:  config.DatabaseConfig{User: "planner", Password: "hunter2", Host: "db.vpc.internal", Port: 3307, Name: "manshift_prod"},
			want: "planner:hunter2@tcp(db.vpc.internal:3307)/manshift_prod?parseTime=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.cfg); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "mongodb"}}
	if _, err := Connect(cfg); err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("err = %v, want unsupported driver", err)
	}
}

func TestAutoMigrate_CreatesAllTables(t *testing.T) {
	gdb := testDB(t)
	for _, m := range AllModels() {
		if !gdb.Migrator().HasTable(m) {
			t.Errorf("missing table for %T", m)
		}
	}
}

func TestReset_WipesRows(t *testing.T) {
	gdb := testDB(t)
	if err := gdb.Create(&models.Session{Name: "Section A"}).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if err := Reset(gdb); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var count int64
	gdb.Model(&models.Session{}).Count(&count)
	if count != 0 {
		t.Errorf("sessions after reset = %d, want 0", count)
	}
}

func TestPurgeHistory(t *testing.T) {
	gdb := testDB(t)
	old := time.Now().Add(-72 * time.Hour)

	stale := &models.Session{Name: "old", IsActive: false}
	if err := gdb.Create(stale).Error; err != nil {
		t.Fatalf("seed stale session: %v", err)
	}
	gdb.Model(stale).Update("created_at", old)

	activeOld := &models.Session{Name: "active-old", IsActive: true}
	if err := gdb.Create(activeOld).Error; err != nil {
		t.Fatalf("seed active session: %v", err)
	}
	gdb.Model(activeOld).Update("created_at", old)

	fresh := &models.Session{Name: "fresh", IsActive: false}
	if err := gdb.Create(fresh).Error; err != nil {
		t.Fatalf("seed fresh session: %v", err)
	}

	w := &models.Worker{SessionID: stale.ID, Name: "Kim", LimitMH: 9}
	if err := gdb.Create(w).Error; err != nil {
		t.Fatalf("seed worker: %v", err)
	}
	if err := gdb.Create(&models.Assignment{WorkerID: w.ID, Category: models.CategoryNormal, AllocatedMH: 1}).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	cutoff := time.Now().Add(-48 * time.Hour)

	// Dry run reports without deleting.
	n, err := PurgeHistory(gdb, cutoff, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if n != 1 {
		t.Errorf("dry run count = %d, want 1", n)
	}
	var sessions int64
	gdb.Model(&models.Session{}).Count(&sessions)
	if sessions != 3 {
		t.Errorf("dry run deleted rows: %d sessions left", sessions)
	}

	n, err = PurgeHistory(gdb, cutoff, false)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	gdb.Model(&models.Session{}).Count(&sessions)
	if sessions != 2 {
		t.Errorf("sessions left = %d, want 2 (active and fresh)", sessions)
	}
	var orphans int64
	gdb.Model(&models.Assignment{}).Count(&orphans)
	if orphans != 0 {
		t.Errorf("assignments left = %d, want 0", orphans)
	}
	var workers int64
	gdb.Model(&models.Worker{}).Count(&workers)
	if workers != 0 {
		t.Errorf("workers left = %d, want 0", workers)
	}
}
