package assign

import (
	"testing"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

func priorities(t *testing.T, db *gorm.DB, sessionID uint) []models.GibunPriority {
	t.Helper()
	var rows []models.GibunPriority
	if err := db.Where("session_id = ?", sessionID).Order("order_no").Find(&rows).Error; err != nil {
		t.Fatalf("load priorities: %v", err)
	}
	return rows
}

func TestSyncGibunPriorities_CreatesInAppearanceOrder(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftDay)
	seedItem(t, db, s.ID, "B737", "WO-1", 1)
	seedItem(t, db, s.ID, "A320", "WO-2", 1)
	seedItem(t, db, s.ID, "B737", "WO-3", 1)

	if err := SyncGibunPriorities(db, s.ID); err != nil {
		t.Fatalf("SyncGibunPriorities: %v", err)
	}

	rows := priorities(t, db, s.ID)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2: %+v", len(rows), rows)
	}
	if rows[0].Gibun != "B737" || rows[0].OrderNo != 1 {
		t.Errorf("first = %+v, want B737 at 1", rows[0])
	}
	if rows[1].Gibun != "A320" || rows[1].OrderNo != 2 {
		t.Errorf("second = %+v, want A320 at 2", rows[1])
	}
}

func TestSyncGibunPriorities_PrunesUnreferenced(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftDay)
	item := seedItem(t, db, s.ID, "B737", "WO-1", 1)
	if err := SyncGibunPriorities(db, s.ID); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	if err := db.Delete(&models.WorkItem{}, item.ID).Error; err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := SyncGibunPriorities(db, s.ID); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if rows := priorities(t, db, s.ID); len(rows) != 0 {
		t.Errorf("stale priority rows survived: %+v", rows)
	}
}

func TestSyncGibunPriorities_KeepsExistingOrder(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftDay)
	seedItem(t, db, s.ID, "B737", "WO-1", 1)
	if err := SetGibunPriority(db, s.ID, "B737", 5); err != nil {
		t.Fatalf("SetGibunPriority: %v", err)
	}
	seedItem(t, db, s.ID, "A320", "WO-2", 1)

	if err := SyncGibunPriorities(db, s.ID); err != nil {
		t.Fatalf("SyncGibunPriorities: %v", err)
	}

	rows := priorities(t, db, s.ID)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Gibun != "B737" || rows[0].OrderNo != 5 {
		t.Errorf("pinned order changed: %+v", rows[0])
	}
	if rows[1].Gibun != "A320" || rows[1].OrderNo != 6 {
		t.Errorf("new gibun should join after the pinned order: %+v", rows[1])
	}
}

func TestSetGibunPriority_MatchesCaseInsensitively(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftDay)
	if err := SetGibunPriority(db, s.ID, "B737", 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := SetGibunPriority(db, s.ID, " b737 ", 3); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows := priorities(t, db, s.ID)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (same gibun, different spelling)", len(rows))
	}
	if rows[0].OrderNo != 3 {
		t.Errorf("order = %d, want 3", rows[0].OrderNo)
	}
}
