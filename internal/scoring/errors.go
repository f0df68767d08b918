package scoring

import "fmt"

// ValidationError reports malformed or missing mandatory input. It aborts
// the run for the affected ticker only.
type ValidationError struct {
	Ticker string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: field %q %s", e.Ticker, e.Field, e.Reason)
}

// InvariantViolation reports a scorer emitting a value outside [0,100] or a
// weight outside (0,1]. It is a programming defect and is never retried.
type InvariantViolation struct {
	Group  Group
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("scorer invariant violated for group %q: %s", e.Group, e.Reason)
}

// InsufficientDataError reports that every effective weight collapsed to
// zero, so no meaningful composite exists. Callers surface it as a degraded
// report rather than a failure of the whole batch.
type InsufficientDataError struct {
	Ticker string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data to score %s: all effective weights are zero", e.Ticker)
}
