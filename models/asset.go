// models/asset.go
package models

import "time"

const AssetTable = "apt_assets"
const AssignmentTable = "apt_asset_assignments"

// Asset types
const (
	AssetHardware = "HARDWARE"
	AssetSoftware = "SOFTWARE"
	AssetLicense  = "LICENSE"
)

// Asset lifecycle statuses. DISPOSED is terminal.
const (
	StatusInStock  = "IN_STOCK"
	StatusAssigned = "ASSIGNED"
	StatusRepair   = "REPAIR"
	StatusLost     = "LOST"
	StatusDisposed = "DISPOSED"
)

// Return conditions
const (
	ConditionGood    = "GOOD"
	ConditionDamaged = "DAMAGED"
)

// Where assets land after a check-in or an audit recovery.
const ReturnsLocation = "warehouse-return-area"
const DefaultBayLocation = "warehouse-bay-a"

type Asset struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Tag    string `gorm:"size:120;uniqueIndex;not null" json:"tag"`
	Name   string `gorm:"size:200;not null" json:"name"`
	Type   string `gorm:"size:20;not null" json:"type"`
	Status string `gorm:"size:20;not null;default:'IN_STOCK'" json:"status"`

	Location     string     `gorm:"size:120" json:"location"`
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`

	Cost              float64 `gorm:"not null" json:"cost"`
	SalvageValue      float64 `gorm:"not null;default:0" json:"salvageValue"`
	DepreciationYears int     `gorm:"not null" json:"depreciationYears"`
	CurrentValue      float64 `gorm:"not null" json:"currentValue"`

	// Set iff Status == ASSIGNED.
	AssignedTo *string `gorm:"type:uuid;index" json:"assignedTo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssetAssignment is one checkout record. Open while ReturnedAt is
// NULL; at most one open row per asset (partial unique index, see
// db.Migrate). Closed rows are immutable history.
type AssetAssignment struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID    string     `gorm:"type:uuid;index;not null" json:"assetId"`
	UserID     string     `gorm:"type:uuid;index;not null" json:"userId"`
	ApprovedBy string     `gorm:"type:uuid" json:"approvedBy"`
	AssignedAt time.Time  `gorm:"index;not null" json:"assignedAt"`
	ExpectedAt *time.Time `json:"expectedAt,omitempty"`

	ReturnedAt      *time.Time `gorm:"index" json:"returnedAt,omitempty"`
	ReturnCondition *string    `gorm:"size:20" json:"returnCondition,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string           { return AssetTable }
func (AssetAssignment) TableName() string { return AssignmentTable }
