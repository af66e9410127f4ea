package models

import "time"

// AuditLog records asset lifecycle actions for the audit trail.
type AuditLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID      string    `gorm:"type:uuid;index" json:"actorId"`
	Action       string    `gorm:"size:40;not null" json:"action"` // checkout, checkin, recover, depreciation
	ResourceType string    `gorm:"size:40;not null" json:"resourceType"`
	ResourceID   *string   `gorm:"size:64" json:"resourceId,omitempty"`
	Detail       string    `gorm:"size:500" json:"detail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string { return "apt_audit_log" }
