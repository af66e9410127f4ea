package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"asset_perf_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Assets

func (r *Repo) CreateAsset(ctx context.Context, a *models.Asset) error {
	if a.DepreciationYears <= 0 {
		return &InvalidConfigError{AssetID: a.Tag, Reason: "depreciation years must be positive"}
	}
	if a.SalvageValue < 0 || a.Cost < a.SalvageValue {
		return &InvalidConfigError{AssetID: a.Tag, Reason: "cost must not be below salvage value"}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Status = models.StatusInStock
	a.AssignedTo = nil
	if a.CurrentValue <= 0 {
		a.CurrentValue = a.Cost
	}
	if a.Location == "" {
		a.Location = models.DefaultBayLocation
	}
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) FindAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	var a models.Asset
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *Repo) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var as []models.Asset
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&as).Error
	return as, err
}

func appendAudit(tx *gorm.DB, actorID, action, resourceType string, resourceID *string, detail string) error {
	return tx.Create(&models.AuditLog{
		ID:           uuid.NewString(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}).Error
}

// Checkout: atomic = lock asset → verify IN_STOCK → verify user →
// flip to ASSIGNED → open assignment. The row lock serializes
// concurrent checkout/check-in attempts on the same asset.
func (r *Repo) CheckoutAsset(ctx context.Context, assetID, userID, approverID string, expectedAt *time.Time) (*models.Asset, error) {
	var out *models.Asset
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "id = ?", assetID).Error; err != nil {
			return notFound(err)
		}
		if a.Status != models.StatusInStock {
			return &InvalidStateError{AssetID: a.ID, Status: a.Status}
		}
		var u models.User
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			return notFound(err)
		}

		now := time.Now().UTC()
		a.Status = models.StatusAssigned
		a.AssignedTo = &userID
		a.Location = "user-loc-" + userID
		if err := tx.Save(&a).Error; err != nil {
			return err
		}

		asg := &models.AssetAssignment{
			ID:         uuid.NewString(),
			AssetID:    a.ID,
			UserID:     userID,
			ApprovedBy: approverID,
			AssignedAt: now,
			ExpectedAt: expectedAt,
		}
		if err := tx.Create(asg).Error; err != nil {
			return err
		}
		if err := appendAudit(tx, approverID, "checkout", "asset", &a.ID, "assigned to "+u.Username); err != nil {
			return err
		}
		out = &a
		return nil
	})
	return out, err
}

type CheckInResult struct {
	Asset *models.Asset `json:"asset"`
	// Nil when no open assignment existed; the status change is
	// applied anyway rather than failing on inconsistent history.
	Assignment *models.AssetAssignment `json:"assignment,omitempty"`
}

// CheckIn: atomic = lock asset → close the open assignment (if any) →
// clear holder, relocate, set status by condition.
func (r *Repo) CheckInAsset(ctx context.Context, assetID, actorID, condition string) (*CheckInResult, error) {
	res := &CheckInResult{}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "id = ?", assetID).Error; err != nil {
			return notFound(err)
		}

		now := time.Now().UTC()
		var asg models.AssetAssignment
		err := tx.Where("asset_id = ? AND returned_at IS NULL", assetID).
			Order("assigned_at DESC").First(&asg).Error
		switch {
		case err == nil:
			asg.ReturnedAt = &now
			asg.ReturnCondition = &condition
			if err := tx.Save(&asg).Error; err != nil {
				return err
			}
			res.Assignment = &asg
		case errors.Is(err, gorm.ErrRecordNotFound):
			// degraded but safe: still apply the status change below
		default:
			return err
		}

		a.AssignedTo = nil
		a.Location = models.ReturnsLocation
		if condition == models.ConditionDamaged {
			a.Status = models.StatusRepair
		} else {
			a.Status = models.StatusInStock
		}
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		if err := appendAudit(tx, actorID, "checkin", "asset", &a.ID, "condition "+condition); err != nil {
			return err
		}
		res.Asset = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) ListAssignments(ctx context.Context, assetID, userID, status string) ([]models.AssetAssignment, error) {
	q := r.DB.WithContext(ctx).Model(&models.AssetAssignment{}).Order("assigned_at DESC")
	if assetID != "" {
		q = q.Where("asset_id = ?", assetID)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if status == "open" {
		q = q.Where("returned_at IS NULL")
	} else if status == "returned" {
		q = q.Where("returned_at IS NOT NULL")
	}
	var as []models.AssetAssignment
	if err := q.Find(&as).Error; err != nil {
		return nil, err
	}
	return as, nil
}

// Admin listing: assets joined with their current open assignment.

type AdminAssetRow struct {
	ID           string  `json:"id"`
	Tag          string  `json:"tag"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Location     string  `json:"location"`
	CurrentValue float64 `json:"currentValue"`

	AssignmentID      *string    `json:"assignmentId,omitempty"`
	HolderID          *string    `json:"holderId,omitempty"`
	HolderUsername    *string    `json:"holderUsername,omitempty"`
	HolderDisplayName *string    `json:"holderDisplayName,omitempty"`
	AssignedAt        *time.Time `json:"assignedAt,omitempty"`
	ExpectedAt        *time.Time `json:"expectedAt,omitempty"`
	Overdue           bool       `json:"overdue"`
}

type AdminAssetsQuery struct {
	Q      string // fuzzy match: tag/name
	Status string // "", IN_STOCK, ASSIGNED, REPAIR, LOST, DISPOSED, "overdue"
	Page   int
	Size   int
}

type PagedAdminAssets struct {
	Total int64           `json:"total"`
	Items []AdminAssetRow `json:"items"`
}

func (r *Repo) ListAssetsWithHolder(ctx context.Context, q AdminAssetsQuery) (*PagedAdminAssets, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}
	offset := (q.Page - 1) * q.Size

	db := r.DB.WithContext(ctx)

	// one open assignment per asset is guaranteed by the partial index
	sub := db.
		Table(models.AssignmentTable+" g").
		Select("g.id, g.asset_id, g.user_id, g.assigned_at, g.expected_at").
		Where("g.returned_at IS NULL")

	qry := db.
		Table(models.AssetTable+" a").
		Select(`
			a.id, a.tag, a.name, a.type, a.status, a.location, a.current_value,
			oa.id          AS assignment_id,
			oa.user_id     AS holder_id,
			oa.assigned_at,
			oa.expected_at,
			u.username     AS holder_username,
			u.display_name AS holder_display_name,
			CASE WHEN oa.expected_at IS NOT NULL AND oa.expected_at < NOW() THEN TRUE ELSE FALSE END AS overdue
		`).
		Joins("LEFT JOIN (?) AS oa ON oa.asset_id = a.id", sub).
		Joins("LEFT JOIN apt_users u ON u.id = oa.user_id")

	if s := strings.TrimSpace(q.Q); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		qry = qry.Where("LOWER(a.tag) LIKE ? OR LOWER(a.name) LIKE ?", pat, pat)
	}
	switch q.Status {
	case "":
		// all
	case "overdue":
		qry = qry.Where("oa.expected_at IS NOT NULL AND oa.expected_at < NOW()")
	default:
		qry = qry.Where("a.status = ?", q.Status)
	}

	var total int64
	if err := db.Table(models.AssetTable + " a").Select("a.id").
		Where(qry.Statement.Clauses["WHERE"].Expression).
		Count(&total).Error; err != nil {
		return nil, err
	}

	qry = qry.Order("a.created_at DESC").Offset(offset).Limit(q.Size)

	var rows []AdminAssetRow
	if err := qry.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return &PagedAdminAssets{Total: total, Items: rows}, nil
}
