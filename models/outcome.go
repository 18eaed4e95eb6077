package models

import "fmt"

// OutcomeStatus summarizes a batched store merge.
type OutcomeStatus int

const (
	StatusOk OutcomeStatus = iota
	StatusPartial
	StatusError
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusPartial:
		return "Partial"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("OutcomeStatus(%d)", int(s))
	}
}

func (s OutcomeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ClassifyOutcome folds per-batch results into a single status.
// Zero attempted batches is reported as StatusError.
func ClassifyOutcome(succeeded, failed int) OutcomeStatus {
	switch {
	case succeeded > 0 && failed == 0:
		return StatusOk
	case succeeded > 0 && failed > 0:
		return StatusPartial
	default:
		return StatusError
	}
}
