package db

import (
	"context"
	"math"

	"asset_perf_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repo) ListReviewSessions(ctx context.Context, reviewerID, cycleID string) ([]models.ReviewSession, error) {
	q := r.DB.WithContext(ctx).Model(&models.ReviewSession{}).Preload("Answers").Order("created_at")
	if reviewerID != "" {
		q = q.Where("reviewer_id = ?", reviewerID)
	}
	if cycleID != "" {
		q = q.Where("cycle_id = ?", cycleID)
	}
	var ss []models.ReviewSession
	if err := q.Find(&ss).Error; err != nil {
		return nil, err
	}
	return ss, nil
}

func (r *Repo) CreateReviewSession(ctx context.Context, s *models.ReviewSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Status = models.ReviewPending
	s.Score = nil
	return r.DB.WithContext(ctx).Create(s).Error
}

// SubmitReview stores the answer set verbatim and finalizes the
// session: score = mean rating rounded to one decimal, status
// SUBMITTED. Submitting twice fails; submitting nothing fails.
func (r *Repo) SubmitReview(ctx context.Context, sessionID string, answers []models.ReviewAnswer) (*models.ReviewSession, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	var out *models.ReviewSession
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.ReviewSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, "id = ?", sessionID).Error; err != nil {
			return notFound(err)
		}
		if s.Status == models.ReviewSubmitted {
			return ErrAlreadySubmitted
		}

		total := 0
		for i := range answers {
			if answers[i].ID == "" {
				answers[i].ID = uuid.NewString()
			}
			answers[i].SessionID = s.ID
			total += answers[i].Rating
		}
		if err := tx.Create(&answers).Error; err != nil {
			return err
		}

		score := math.Round(float64(total)/float64(len(answers))*10) / 10
		s.Score = &score
		s.Status = models.ReviewSubmitted
		if err := tx.Save(&s).Error; err != nil {
			return err
		}
		s.Answers = answers
		out = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
