// models/perf.go
package models

import "time"

const ObjectiveTable = "apt_objectives"
const KeyResultTable = "apt_key_results"
const ReviewTable = "apt_review_sessions"
const AnswerTable = "apt_review_answers"
const ProjectTable = "apt_projects"
const CycleTable = "apt_perf_cycles"

// Key result metric types
const (
	MetricNumber     = "NUMBER"
	MetricPercentage = "PERCENTAGE"
)

// Review session types
const (
	ReviewSelf    = "SELF"
	ReviewManager = "MANAGER"
	ReviewPeer    = "PEER"
)

// Review session statuses. SUBMITTED is terminal.
const (
	ReviewPending   = "PENDING"
	ReviewSubmitted = "SUBMITTED"
)

type PerformanceCycle struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `gorm:"size:20;not null;default:'OPEN'" json:"status"` // OPEN / REVIEWING / CLOSED
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Objective struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"type:uuid;index;not null" json:"userId"`
	CycleID string `gorm:"size:64;index;not null" json:"cycleId"`
	Title   string `gorm:"size:300;not null" json:"title"`
	Weight  int    `gorm:"not null;default:0" json:"weight"` // 0-100, advisory

	// Derived from the key results, never trusted from callers.
	Progress int `gorm:"not null;default:0" json:"progress"`

	KeyResults []KeyResult `gorm:"foreignKey:ObjectiveID" json:"keyResults"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type KeyResult struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ObjectiveID string `gorm:"type:uuid;index;not null" json:"objectiveId"`
	Title       string `gorm:"size:300;not null" json:"title"`
	MetricType  string `gorm:"size:20;not null" json:"metricType"`

	// Target may be below start; decreasing metrics are valid.
	StartVal   float64 `gorm:"not null;default:0" json:"startVal"`
	TargetVal  float64 `gorm:"not null;default:0" json:"targetVal"`
	CurrentVal float64 `gorm:"not null;default:0" json:"currentVal"`

	LinkedProjectID *string `gorm:"size:64;index" json:"linkedProjectId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project mirrors the external project tracker. Rows are consumed
// read-only as a progress source for linked key results.
type Project struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Name     string `gorm:"size:200;not null" json:"name"`
	Progress int    `gorm:"not null;default:0" json:"progress"` // 0-100
}

type ReviewSession struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	CycleID      string `gorm:"size:64;index;not null" json:"cycleId"`
	TargetUserID string `gorm:"type:uuid;index;not null" json:"targetUserId"`
	ReviewerID   string `gorm:"type:uuid;index;not null" json:"reviewerId"`
	Type         string `gorm:"size:20;not null" json:"type"`
	Status       string `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	// Present only once SUBMITTED; mean rating rounded to one decimal.
	Score *float64 `json:"score,omitempty"`

	Answers []ReviewAnswer `gorm:"foreignKey:SessionID" json:"answers"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewAnswer struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  string `gorm:"type:uuid;index;not null" json:"sessionId"`
	QuestionID string `gorm:"size:64;not null" json:"questionId"`
	Rating     int    `gorm:"not null" json:"rating"` // 1-5
	Comment    string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
}

func (PerformanceCycle) TableName() string { return CycleTable }
func (Objective) TableName() string        { return ObjectiveTable }
func (KeyResult) TableName() string        { return KeyResultTable }
func (Project) TableName() string          { return ProjectTable }
func (ReviewSession) TableName() string    { return ReviewTable }
func (ReviewAnswer) TableName() string     { return AnswerTable }
