package onboarding

import (
	"fmt"

	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/google/uuid"
)

// Status is the overall outcome of a workflow run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	// StatusPartialSuccess means the touchpoints record was persisted but
	// the creation event was not published. The record must not be rolled
	// back; operators re-trigger publication manually.
	StatusPartialSuccess Status = "partial_success"
	StatusFailed         Status = "failed"
)

// Result reports the outcome of one workflow run, including the last state
// reached so failures can be attributed to a specific step.
type Result struct {
	Status        Status
	State         State
	Customer      *crm.CorporateCustomer
	TouchpointsID uuid.UUID
	Err           error
}

// Succeeded reports full success: record persisted and event published.
func (r Result) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// PartialSuccess reports that the record is durable but unannounced.
func (r Result) PartialSuccess() bool {
	return r.Status == StatusPartialSuccess
}

// Message returns a human-readable, single-line description of the outcome.
func (r Result) Message() string {
	switch r.Status {
	case StatusSucceeded:
		return fmt.Sprintf("touchpoints record %s created and event published", r.TouchpointsID)
	case StatusPartialSuccess:
		return fmt.Sprintf("partial success: touchpoints record %s created but event not published: %v", r.TouchpointsID, r.Err)
	default:
		return fmt.Sprintf("workflow failed in state %q: %v", r.State, r.Err)
	}
}

func failed(state State, err error) Result {
	return Result{Status: StatusFailed, State: state, Err: err}
}

func failedWithCustomer(state State, customer *crm.CorporateCustomer, err error) Result {
	return Result{Status: StatusFailed, State: state, Customer: customer, Err: err}
}
