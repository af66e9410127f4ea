// Package collab holds clients for the external collaborators this
// service consumes but does not own: the review-draft text generator
// and the visual recognizer. Both fail as ErrUnavailable; retry
// policy, if any, belongs to the collaborator's own deployment.
package collab

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("collaborator unavailable")

// TextGenerator drafts free text for a review of one user in one
// cycle. The output is advisory; nothing correctness-critical reads it.
type TextGenerator interface {
	GenerateReviewDraft(ctx context.Context, userID, cycleID string) (string, error)
}

// Recognizer turns an uploaded audit photo into the asset tags it
// visually confirmed present.
type Recognizer interface {
	RecognizeTags(ctx context.Context, imageData []byte) ([]string, error)
}
