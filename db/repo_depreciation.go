package db

import (
	"context"

	"asset_perf_tool/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepreciationResult struct {
	Processed      int      `json:"processed"`
	TotalDeducted  float64  `json:"totalDeducted"`
	FailedAssetIDs []string `json:"failedAssetIds,omitempty"`
}

// RunDepreciation advances every eligible asset's book value by one
// nominal period of straight-line depreciation, clamped at salvage.
// Each asset is its own transaction; one failure does not abort the
// rest. The engine is not idempotent across calls — keeping a run
// from repeating within the same accounting period is the caller's
// job (see the redis period guard in controllers).
func (r *Repo) RunDepreciation(ctx context.Context) (*DepreciationResult, error) {
	var ids []string
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("status <> ? AND current_value > salvage_value", models.StatusDisposed).
		Order("created_at").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	res := &DepreciationResult{}
	for _, id := range ids {
		deducted, err := r.depreciateOne(ctx, id)
		if err != nil {
			res.FailedAssetIDs = append(res.FailedAssetIDs, id)
			continue
		}
		if deducted > 0 {
			res.Processed++
			res.TotalDeducted += deducted
		}
	}
	return res, nil
}

func (r *Repo) depreciateOne(ctx context.Context, assetID string) (float64, error) {
	var deducted float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "id = ?", assetID).Error; err != nil {
			return notFound(err)
		}
		// re-check under lock; another run may have converged it
		if a.Status == models.StatusDisposed || a.CurrentValue <= a.SalvageValue {
			return nil
		}
		if a.DepreciationYears <= 0 {
			return &InvalidConfigError{AssetID: a.ID, Reason: "depreciation years must be positive"}
		}

		monthly := (a.Cost - a.SalvageValue) / float64(a.DepreciationYears*12)
		d := monthly
		if a.CurrentValue-d < a.SalvageValue {
			d = a.CurrentValue - a.SalvageValue
		}
		a.CurrentValue -= d
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		deducted = d
		return nil
	})
	return deducted, err
}
