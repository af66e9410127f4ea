package db

import (
	"context"
	"errors"
	"testing"

	"asset_perf_tool/models"

	"github.com/google/uuid"
)

// TestKeyResultPercent pins the percent formula, including the
// decreasing-metric and zero-range cases.
func TestKeyResultPercent(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		target  float64
		current float64
		want    int
	}{
		{"simple percentage", 0, 100, 30, 30},
		{"decreasing metric", 250, 100, 150, 67}, // done=100, range=150
		{"zero range", 50, 50, 80, 0},
		{"overshoot clamps", 0, 100, 140, 100},
		{"no movement", 21, 14, 21, 0},
		{"fractional values", 3.8, 4.5, 4.0, 29}, // done=0.2, range=0.7
	}
	for _, tc := range cases {
		got := KeyResultPercent(models.KeyResult{StartVal: tc.start, TargetVal: tc.target, CurrentVal: tc.current})
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestObjectiveProgressMean(t *testing.T) {
	krs := []models.KeyResult{
		{StartVal: 0, TargetVal: 100, CurrentVal: 30},  // 30
		{StartVal: 0, TargetVal: 100, CurrentVal: 50},  // 50
	}
	if got := ObjectiveProgress(krs); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
	if got := ObjectiveProgress(nil); got != 0 {
		t.Fatalf("no key results must be 0, got %d", got)
	}
}

// TestSaveObjectiveRecomputesProgress: whatever the caller stuffed in
// Progress is discarded in favor of the derived value.
func TestSaveObjectiveRecomputesProgress(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice")

	obj := &models.Objective{
		UserID:   u.ID,
		CycleID:  "cycle-2025-q1",
		Title:    "ship the thing",
		Weight:   40,
		Progress: 99,
		KeyResults: []models.KeyResult{
			{Title: "kr1", MetricType: models.MetricPercentage, StartVal: 0, TargetVal: 100, CurrentVal: 30},
			{Title: "kr2", MetricType: models.MetricPercentage, StartVal: 0, TargetVal: 100, CurrentVal: 50},
		},
	}
	if err := r.SaveObjective(ctx, obj); err != nil {
		t.Fatalf("save: %v", err)
	}
	if obj.Progress != 40 {
		t.Fatalf("expected recomputed progress 40, got %d", obj.Progress)
	}

	stored, err := r.ListObjectives(ctx, u.ID, "cycle-2025-q1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].Progress != 40 {
		t.Fatalf("persisted progress mismatch: %+v", stored)
	}
	if len(stored[0].KeyResults) != 2 {
		t.Fatalf("expected 2 key results, got %d", len(stored[0].KeyResults))
	}
}

func TestSaveObjectiveWithoutKeyResults(t *testing.T) {
	r := newTestRepo(t)
	u := seedUser(t, r, "alice")
	obj := &models.Objective{UserID: u.ID, CycleID: "c1", Title: "empty", Progress: 77}
	if err := r.SaveObjective(context.Background(), obj); err != nil {
		t.Fatalf("save: %v", err)
	}
	if obj.Progress != 0 {
		t.Fatalf("objective with no key results must have progress 0, got %d", obj.Progress)
	}
}

func TestSyncKeyResultUnlinked(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice")
	obj := &models.Objective{UserID: u.ID, CycleID: "c1", Title: "o",
		KeyResults: []models.KeyResult{
			{Title: "kr", MetricType: models.MetricNumber, StartVal: 0, TargetVal: 10, CurrentVal: 4},
		},
	}
	if err := r.SaveObjective(ctx, obj); err != nil {
		t.Fatalf("save: %v", err)
	}
	krID := obj.KeyResults[0].ID

	_, err := r.SyncKeyResult(ctx, krID)
	if !errors.Is(err, ErrNotLinked) {
		t.Fatalf("expected ErrNotLinked, got %v", err)
	}

	// current value untouched
	var kr models.KeyResult
	if err := r.DB.First(&kr, "id = ?", krID).Error; err != nil {
		t.Fatalf("reload kr: %v", err)
	}
	if kr.CurrentVal != 4 {
		t.Fatalf("current value mutated: %v", kr.CurrentVal)
	}
}

func TestSyncKeyResultMissingProject(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice")
	gone := "proj-gone"
	obj := &models.Objective{UserID: u.ID, CycleID: "c1", Title: "o",
		KeyResults: []models.KeyResult{
			{Title: "kr", MetricType: models.MetricPercentage, TargetVal: 100, LinkedProjectID: &gone},
		},
	}
	if err := r.SaveObjective(ctx, obj); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := r.SyncKeyResult(ctx, obj.KeyResults[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestSyncKeyResultPullsProjectProgress: the linked project's percent
// becomes current_val and the owning objective is recomputed with it.
func TestSyncKeyResultPullsProjectProgress(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice")
	if err := r.DB.Create(&models.Project{ID: "proj-001", Name: "website rebuild", Progress: 45}).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}

	pid := "proj-001"
	obj := &models.Objective{UserID: u.ID, CycleID: "c1", Title: "o",
		KeyResults: []models.KeyResult{
			{Title: "linked", MetricType: models.MetricPercentage, StartVal: 0, TargetVal: 100, CurrentVal: 10, LinkedProjectID: &pid},
			{Title: "manual", MetricType: models.MetricPercentage, StartVal: 0, TargetVal: 100, CurrentVal: 55},
		},
	}
	if err := r.SaveObjective(ctx, obj); err != nil {
		t.Fatalf("save: %v", err)
	}

	res, err := r.SyncKeyResult(ctx, obj.KeyResults[0].ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !res.Updated || res.NewValue != 45 {
		t.Fatalf("unexpected sync result: %+v", res)
	}
	if res.Progress != 50 { // mean(45, 55)
		t.Fatalf("expected objective progress 50, got %d", res.Progress)
	}

	var stored models.Objective
	if err := r.DB.First(&stored, "id = ?", obj.ID).Error; err != nil {
		t.Fatalf("reload objective: %v", err)
	}
	if stored.Progress != 50 {
		t.Fatalf("persisted progress %d, want 50", stored.Progress)
	}
}

func TestGetActiveCycle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	if _, err := r.GetActiveCycle(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no cycles, got %v", err)
	}

	closed := &models.PerformanceCycle{ID: uuid.NewString(), Title: "old", Status: "CLOSED"}
	open := &models.PerformanceCycle{ID: "cycle-2025-q1", Title: "2025 Q1", Status: "OPEN"}
	if err := r.DB.Create(closed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := r.DB.Create(open).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	c, err := r.GetActiveCycle(ctx)
	if err != nil {
		t.Fatalf("active cycle: %v", err)
	}
	if c.ID != "cycle-2025-q1" {
		t.Fatalf("expected the open cycle, got %s", c.ID)
	}
}
