package models

// Outcome tags the result of an operation that may succeed with reduced information.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeDegraded Outcome = "degraded"
	OutcomeFailed   Outcome = "failed"
)

// CreateLocationResult is returned by location creation. Outcome is degraded when the
// articles are the synthetic fallback; Cause then holds the enrichment failure, if any.
type CreateLocationResult struct {
	Location *Location
	Outcome  Outcome
	Cause    error
}

// Err returns Cause when the creation failed and nil otherwise.
func (r CreateLocationResult) Err() error {
	if r.Outcome == OutcomeFailed {
		return r.Cause
	}
	return nil
}

// Answer is the text produced for a user query. A degraded answer carries a fallback
// message in Text and the backend failure in Cause.
type Answer struct {
	Text    string
	Outcome Outcome
	Cause   error
}
