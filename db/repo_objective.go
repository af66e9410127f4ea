package db

import (
	"context"
	"math"

	"asset_perf_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyResultPercent is the clamped completion percent of one key
// result. Decreasing metrics (target below start) work the same way
// through the absolute deltas. A zero range is 0%, not a division.
func KeyResultPercent(kr models.KeyResult) int {
	rng := math.Abs(kr.TargetVal - kr.StartVal)
	if rng == 0 {
		return 0
	}
	done := math.Abs(kr.CurrentVal - kr.StartVal)
	p := int(math.Round(done / rng * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

// ObjectiveProgress is the rounded mean percent over the key results;
// 0 when there are none.
func ObjectiveProgress(krs []models.KeyResult) int {
	if len(krs) == 0 {
		return 0
	}
	sum := 0
	for _, kr := range krs {
		sum += KeyResultPercent(kr)
	}
	return int(math.Round(float64(sum) / float64(len(krs))))
}

func (r *Repo) ListObjectives(ctx context.Context, userID, cycleID string) ([]models.Objective, error) {
	q := r.DB.WithContext(ctx).Model(&models.Objective{}).Preload("KeyResults").Order("created_at")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if cycleID != "" {
		q = q.Where("cycle_id = ?", cycleID)
	}
	var objs []models.Objective
	if err := q.Find(&objs).Error; err != nil {
		return nil, err
	}
	return objs, nil
}

// SaveObjective upserts an objective with its key results as one
// consistency unit. Progress is always recomputed here; whatever the
// caller put in obj.Progress is discarded.
func (r *Repo) SaveObjective(ctx context.Context, obj *models.Objective) error {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	for i := range obj.KeyResults {
		if obj.KeyResults[i].ID == "" {
			obj.KeyResults[i].ID = uuid.NewString()
		}
		obj.KeyResults[i].ObjectiveID = obj.ID
	}
	obj.Progress = ObjectiveProgress(obj.KeyResults)

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// upsert: ids are assigned client-side, so Save would miss inserts
		if err := tx.Omit("KeyResults").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(obj).Error; err != nil {
			return err
		}
		// replace semantics: the submitted set is the whole set
		if err := tx.Where("objective_id = ?", obj.ID).Delete(&models.KeyResult{}).Error; err != nil {
			return err
		}
		if len(obj.KeyResults) > 0 {
			if err := tx.Create(&obj.KeyResults).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type SyncResult struct {
	Updated  bool    `json:"updated"`
	NewValue float64 `json:"newValue"`
	Progress int     `json:"progress"`
}

// SyncKeyResult pulls the linked project's progress into the key
// result's current value and recomputes the owning objective in the
// same transaction, so stored progress never reflects a half-applied
// sync.
func (r *Repo) SyncKeyResult(ctx context.Context, krID string) (*SyncResult, error) {
	res := &SyncResult{}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var kr models.KeyResult
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&kr, "id = ?", krID).Error; err != nil {
			return notFound(err)
		}
		if kr.LinkedProjectID == nil || *kr.LinkedProjectID == "" {
			return ErrNotLinked
		}

		var p models.Project
		if err := tx.First(&p, "id = ?", *kr.LinkedProjectID).Error; err != nil {
			return notFound(err)
		}

		kr.CurrentVal = float64(p.Progress)
		if err := tx.Save(&kr).Error; err != nil {
			return err
		}

		var siblings []models.KeyResult
		if err := tx.Where("objective_id = ?", kr.ObjectiveID).Find(&siblings).Error; err != nil {
			return err
		}
		progress := ObjectiveProgress(siblings)
		if err := tx.Model(&models.Objective{}).
			Where("id = ?", kr.ObjectiveID).
			Update("progress", progress).Error; err != nil {
			return err
		}

		res.Updated = true
		res.NewValue = kr.CurrentVal
		res.Progress = progress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) GetActiveCycle(ctx context.Context) (*models.PerformanceCycle, error) {
	var c models.PerformanceCycle
	err := r.DB.WithContext(ctx).
		Where("status <> 'CLOSED'").
		Order("start_date DESC").
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}
