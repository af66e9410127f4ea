package db

import (
	"context"
	"math"
	"testing"

	"asset_perf_tool/models"
)

// TestRunDepreciationStraightLine checks one period of the
// 120000/10000/3y example: monthly = 110000/36 ≈ 3055.56.
func TestRunDepreciationStraightLine(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedAsset(t, r, models.Asset{
		Cost: 120000, SalvageValue: 10000, DepreciationYears: 3, CurrentValue: 120000,
	})

	res, err := r.RunDepreciation(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("expected 1 processed, got %d", res.Processed)
	}
	monthly := (120000.0 - 10000.0) / 36.0
	if math.Abs(res.TotalDeducted-monthly) > 1e-6 {
		t.Fatalf("expected deduction %.4f, got %.4f", monthly, res.TotalDeducted)
	}

	after, _ := r.FindAssetByID(ctx, a.ID)
	if math.Abs(after.CurrentValue-(120000-monthly)) > 1e-6 {
		t.Fatalf("unexpected current value %.4f", after.CurrentValue)
	}
}

// TestRunDepreciationClampsAtSalvage makes sure the last period
// deducts only down to the salvage floor, never past it.
func TestRunDepreciationClampsAtSalvage(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedAsset(t, r, models.Asset{
		Cost: 120000, SalvageValue: 10000, DepreciationYears: 3, CurrentValue: 10100,
	})

	res, err := r.RunDepreciation(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(res.TotalDeducted-100) > 1e-6 {
		t.Fatalf("expected clamped deduction 100, got %.4f", res.TotalDeducted)
	}
	after, _ := r.FindAssetByID(ctx, a.ID)
	if after.CurrentValue != 10000 {
		t.Fatalf("expected salvage floor 10000, got %.4f", after.CurrentValue)
	}
}

// TestRunDepreciationConverges runs many periods and expects the
// value to settle exactly on salvage with later runs deducting nothing.
func TestRunDepreciationConverges(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedAsset(t, r, models.Asset{
		Cost: 1200, SalvageValue: 200, DepreciationYears: 1, CurrentValue: 1200,
	})

	for i := 0; i < 15; i++ {
		if _, err := r.RunDepreciation(ctx); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		after, _ := r.FindAssetByID(ctx, a.ID)
		if after.CurrentValue < a.SalvageValue-1e-9 {
			t.Fatalf("run %d drove value below salvage: %.4f", i, after.CurrentValue)
		}
	}

	after, _ := r.FindAssetByID(ctx, a.ID)
	if math.Abs(after.CurrentValue-200) > 1e-6 {
		t.Fatalf("expected convergence to 200, got %.4f", after.CurrentValue)
	}

	res, err := r.RunDepreciation(ctx)
	if err != nil {
		t.Fatalf("post-convergence run: %v", err)
	}
	if res.Processed != 0 || res.TotalDeducted != 0 {
		t.Fatalf("converged asset still processed: %+v", res)
	}
}

func TestRunDepreciationSkipsDisposed(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedAsset(t, r, models.Asset{
		Status: models.StatusDisposed,
		Cost:   1000, SalvageValue: 0, DepreciationYears: 1, CurrentValue: 500,
	})

	res, err := r.RunDepreciation(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Processed != 0 {
		t.Fatalf("disposed asset processed")
	}
	after, _ := r.FindAssetByID(ctx, a.ID)
	if after.CurrentValue != 500 {
		t.Fatalf("disposed asset mutated: %.2f", after.CurrentValue)
	}
}

// TestRunDepreciationIsolatesFailures: a corrupted asset (zero
// horizon smuggled past creation) is reported, not fatal to the batch.
func TestRunDepreciationIsolatesFailures(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	bad := seedAsset(t, r, models.Asset{
		Tag:  "BAD-1",
		Cost: 1000, SalvageValue: 0, CurrentValue: 1000,
	})
	// bypass CreateAsset validation
	if err := r.DB.Model(&models.Asset{}).Where("id = ?", bad.ID).Update("depreciation_years", 0).Error; err != nil {
		t.Fatalf("corrupt asset: %v", err)
	}
	good := seedAsset(t, r, models.Asset{
		Tag:  "GOOD-1",
		Cost: 1200, SalvageValue: 0, DepreciationYears: 1, CurrentValue: 1200,
	})

	res, err := r.RunDepreciation(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("expected 1 processed, got %d", res.Processed)
	}
	if len(res.FailedAssetIDs) != 1 || res.FailedAssetIDs[0] != bad.ID {
		t.Fatalf("expected failed asset %s, got %v", bad.ID, res.FailedAssetIDs)
	}
	after, _ := r.FindAssetByID(ctx, good.ID)
	if after.CurrentValue >= 1200 {
		t.Fatalf("good asset not depreciated")
	}
}
