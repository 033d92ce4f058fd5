package report

import (
	"errors"
	"fmt"
)

// Report errors. Callers match them with errors.Is; the StageError wrapping
// them names the step that failed.
var (
	// ErrMissingColumn is returned when a column a stage reads is absent
	// from the loaded header.
	ErrMissingColumn = errors.New("missing column")

	// ErrTypeMismatch is returned when a column that is concatenated as text
	// holds a number, boolean or error cell.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Stage names used in StageError.
const (
	StageGuestBearers = "filter-guest-bearers"
	StageDeriveGuests = "derive-guests"
	StageDietary      = "filter-dietary"
)

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
