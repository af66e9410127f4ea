package db

import (
	"errors"
	"fmt"
)

// Error kinds the engines report. Controllers map these to HTTP
// statuses; nothing below this layer writes to the response.
var (
	ErrNotFound         = errors.New("record not found")
	ErrNotLinked        = errors.New("key result has no linked project")
	ErrAlreadySubmitted = errors.New("review session already submitted")
	ErrNoAnswers        = errors.New("review submission has no answers")
	ErrAlreadyAssigned  = errors.New("asset already assigned")
)

// InvalidStateError reports a lifecycle operation attempted from a
// disallowed status. It carries the asset id and the status seen so
// the caller can render e.g. "cannot check out a REPAIR asset".
type InvalidStateError struct {
	AssetID string
	Status  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("asset %s: invalid state %s for this operation", e.AssetID, e.Status)
}

// InvalidConfigError reports a data-integrity violation in an asset's
// financial fields (zero depreciation horizon, cost below salvage).
type InvalidConfigError struct {
	AssetID string
	Reason  string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("asset %s: invalid configuration: %s", e.AssetID, e.Reason)
}
