package db

import (
	"context"
	"errors"

	"asset_perf_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReconcileResult struct {
	RecognizedCount int      `json:"recognizedCount"`
	RecoveredCount  int      `json:"recoveredCount"`
	RecoveredTags   []string `json:"recoveredTags"`
	FailedTags      []string `json:"failedTags,omitempty"`
}

// ReconcileScan recovers LOST assets whose tag was visually confirmed
// present. Recognition never creates assets and never touches
// non-LOST statuses. Per-tag failures are collected, not fatal.
func (r *Repo) ReconcileScan(ctx context.Context, actorID string, recognizedTags []string) (*ReconcileResult, error) {
	res := &ReconcileResult{
		RecognizedCount: len(recognizedTags),
		RecoveredTags:   []string{},
	}
	for _, tag := range recognizedTags {
		recovered, err := r.recoverByTag(ctx, actorID, tag)
		if err != nil {
			res.FailedTags = append(res.FailedTags, tag)
			continue
		}
		if recovered {
			res.RecoveredCount++
			res.RecoveredTags = append(res.RecoveredTags, tag)
		}
	}
	return res, nil
}

func (r *Repo) recoverByTag(ctx context.Context, actorID, tag string) (bool, error) {
	recovered := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "tag = ?", tag).Error
		if err != nil {
			// unknown tags are simply not recoveries
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if a.Status != models.StatusLost {
			return nil
		}
		a.Status = models.StatusInStock
		a.Location = models.DefaultBayLocation
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		if err := appendAudit(tx, actorID, "recover", "asset", &a.ID, "recovered by visual audit"); err != nil {
			return err
		}
		recovered = true
		return nil
	})
	return recovered, err
}

// Audit log

func (r *Repo) AppendAudit(ctx context.Context, actorID, action, resourceType string, resourceID *string, detail string) error {
	return r.DB.WithContext(ctx).Create(&models.AuditLog{
		ID:           uuid.NewString(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}).Error
}

func (r *Repo) ListAuditLog(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []models.AuditLog
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
