package assign

import (
	"math"
	"testing"

	"github.com/zulandar/manshift/internal/models"
)

// Fixed breaks act as obstacles; floating work fills the gaps; the merged
// schedule comes back in start order.
func TestBuildWorkerDay_MergesFixedAndFloating(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftDay)
	w := seedWorker(t, db, s.ID, "Kim", 9)

	brk := &models.Assignment{
		WorkerID: w.ID, Category: models.CategoryBreak, Code: "lunch",
		AllocatedMH: 0.5, StartMin: intPtr(600), EndMin: intPtr(630), IsFixed: true,
	}
	if err := db.Create(brk).Error; err != nil {
		t.Fatalf("create break: %v", err)
	}

	item := seedItem(t, db, s.ID, "B737", "WO-1", 3)
	untimedRow(t, db, item.ID, w.ID, 3)

	day, err := BuildWorkerDay(db, s.ID, w.ID)
	if err != nil {
		t.Fatalf("BuildWorkerDay: %v", err)
	}

	if day.WorkerName != "Kim" {
		t.Errorf("worker name = %q, want Kim", day.WorkerName)
	}
	// 3h of work split around the 10:00-10:30 lunch, plus the lunch row.
	if len(day.Schedule) != 3 {
		t.Fatalf("schedule rows = %d, want 3: %+v", len(day.Schedule), day.Schedule)
	}
	if day.Schedule[0].StartMin != 480 || day.Schedule[0].EndMin != 600 {
		t.Errorf("first row = [%d,%d), want [480,600)", day.Schedule[0].StartMin, day.Schedule[0].EndMin)
	}
	if !day.Schedule[1].Fixed || day.Schedule[1].WorkOrder != "KANBI" || day.Schedule[1].Description != "lunch" {
		t.Errorf("second row should be the lunch break: %+v", day.Schedule[1])
	}
	if day.Schedule[2].StartMin != 630 || day.Schedule[2].EndMin != 690 {
		t.Errorf("third row = [%d,%d), want [630,690)", day.Schedule[2].StartMin, day.Schedule[2].EndMin)
	}
	if math.Abs(day.TotalMH-3.5) > 1e-9 {
		t.Errorf("total = %v, want 3.5 (work + break hours)", day.TotalMH)
	}
}

// Night-shift rows past midnight sort after the evening rows even though
// their stored minutes may be smaller wall-clock values.
func TestBuildWorkerDay_NightSortOrder(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftNight)
	w := seedWorker(t, db, s.ID, "Kim", 12)

	early := &models.Assignment{
		WorkerID: w.ID, Category: models.CategoryDirect, Code: "evening briefing",
		AllocatedMH: 1, StartMin: intPtr(1230), EndMin: intPtr(1290), IsFixed: true,
	}
	late := &models.Assignment{
		WorkerID: w.ID, Category: models.CategoryBreak, Code: "night meal",
		AllocatedMH: 0.5, StartMin: intPtr(60), EndMin: intPtr(90), IsFixed: true,
	}
	for _, a := range []*models.Assignment{late, early} {
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("create fixed row: %v", err)
		}
	}

	day, err := BuildWorkerDay(db, s.ID, w.ID)
	if err != nil {
		t.Fatalf("BuildWorkerDay: %v", err)
	}
	if len(day.Schedule) != 2 {
		t.Fatalf("schedule rows = %d, want 2", len(day.Schedule))
	}
	if day.Schedule[0].Description != "evening briefing" {
		t.Errorf("first row = %+v, want the 20:30 briefing", day.Schedule[0])
	}
	if day.Schedule[1].Description != "night meal" {
		t.Errorf("second row = %+v, want the 01:00 meal", day.Schedule[1])
	}
}

func TestBuildWorkerDay_UnknownWorker(t *testing.T) {
	db := testDB(t)
	s := seedSession(t, db, models.ShiftDay)
	if _, err := BuildWorkerDay(db, s.ID, 12345); err == nil {
		t.Error("expected error for unknown worker")
	}
}
