package db

import (
	"context"
	"errors"
	"testing"

	"asset_perf_tool/models"
)

func seedSession(t *testing.T, r *Repo) *models.ReviewSession {
	t.Helper()
	s := &models.ReviewSession{
		CycleID:      "cycle-2025-q1",
		TargetUserID: seedUser(t, r, "target").ID,
		ReviewerID:   seedUser(t, r, "reviewer").ID,
		Type:         models.ReviewManager,
	}
	if err := r.CreateReviewSession(context.Background(), s); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

// TestSubmitReviewScoresMeanRating: ratings [4,5,3] → score 4.0 and a
// terminal SUBMITTED status.
func TestSubmitReviewScoresMeanRating(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	s := seedSession(t, r)

	answers := []models.ReviewAnswer{
		{QuestionID: "q1", Rating: 4, Comment: "solid"},
		{QuestionID: "q2", Rating: 5},
		{QuestionID: "q3", Rating: 3},
	}
	got, err := r.SubmitReview(ctx, s.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != models.ReviewSubmitted {
		t.Fatalf("expected SUBMITTED, got %s", got.Status)
	}
	if got.Score == nil || *got.Score != 4.0 {
		t.Fatalf("expected score 4.0, got %v", got.Score)
	}
	if len(got.Answers) != 3 {
		t.Fatalf("expected 3 answers stored, got %d", len(got.Answers))
	}
}

func TestSubmitReviewRoundsToOneDecimal(t *testing.T) {
	r := newTestRepo(t)
	s := seedSession(t, r)

	got, err := r.SubmitReview(context.Background(), s.ID, []models.ReviewAnswer{
		{QuestionID: "q1", Rating: 4},
		{QuestionID: "q2", Rating: 4},
		{QuestionID: "q3", Rating: 5},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Score == nil || *got.Score != 4.3 { // 13/3 = 4.333…
		t.Fatalf("expected score 4.3, got %v", got.Score)
	}
}

// TestSubmitReviewTwiceFails: the second submission must not silently
// overwrite the first.
func TestSubmitReviewTwiceFails(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	s := seedSession(t, r)

	first := []models.ReviewAnswer{{QuestionID: "q1", Rating: 4}}
	if _, err := r.SubmitReview(ctx, s.ID, first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := []models.ReviewAnswer{{QuestionID: "q1", Rating: 1}}
	if _, err := r.SubmitReview(ctx, s.ID, second); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}

	sessions, _ := r.ListReviewSessions(ctx, s.ReviewerID, "")
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if *sessions[0].Score != 4.0 || len(sessions[0].Answers) != 1 {
		t.Fatalf("first submission mutated: %+v", sessions[0])
	}
}

func TestSubmitReviewRejectsEmptyAnswerSet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	s := seedSession(t, r)

	if _, err := r.SubmitReview(ctx, s.ID, nil); !errors.Is(err, ErrNoAnswers) {
		t.Fatalf("expected ErrNoAnswers, got %v", err)
	}

	sessions, _ := r.ListReviewSessions(ctx, s.ReviewerID, "")
	if sessions[0].Status != models.ReviewPending {
		t.Fatalf("session left PENDING expected, got %s", sessions[0].Status)
	}
}

func TestSubmitReviewMissingSession(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.SubmitReview(context.Background(), "nope", []models.ReviewAnswer{{QuestionID: "q1", Rating: 3}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
