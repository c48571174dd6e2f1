package crm

import (
	"fmt"

	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/google/uuid"
)

// Error codes for the onboarding workflow.
const (
	ErrCodeCustomerNotFound    = "CUSTOMER_NOT_FOUND"
	ErrCodeAmbiguousCustomer   = "AMBIGUOUS_CUSTOMER"
	ErrCodeStoreUnavailable    = "STORE_UNAVAILABLE"
	ErrCodeConstraintViolation = "CONSTRAINT_VIOLATION"
	ErrCodeWriteFailed         = "WRITE_FAILED"
	ErrCodePublishFailed       = "PUBLISH_FAILED"
)

// NewCustomerNotFoundError reports that no customer row matched the name.
func NewCustomerNotFoundError(name string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeCustomerNotFound,
		fmt.Sprintf("customer %q not found", name))
}

// NewAmbiguousCustomerError reports that more than one row matched the name.
// The resolver never picks a row arbitrarily.
func NewAmbiguousCustomerError(name string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeAmbiguousCustomer,
		fmt.Sprintf("customer name %q matches more than one row", name))
}

// NewStoreUnavailableError wraps a transport-level store failure.
func NewStoreUnavailableError(operation string, cause error) *shared.DomainError {
	return shared.WrapDomainError(ErrCodeStoreUnavailable,
		fmt.Sprintf("customer store unavailable during %s", operation), cause)
}

// NewConstraintViolationError reports an insert rejected by a store
// constraint, e.g. a touchpoints row referencing a deleted customer.
func NewConstraintViolationError(customerID uuid.UUID, cause error) *shared.DomainError {
	return shared.WrapDomainError(ErrCodeConstraintViolation,
		fmt.Sprintf("touchpoints insert for customer %s violated a store constraint", customerID), cause)
}

// NewWriteFailedError wraps any other store failure during the insert.
func NewWriteFailedError(customerID uuid.UUID, cause error) *shared.DomainError {
	return shared.WrapDomainError(ErrCodeWriteFailed,
		fmt.Sprintf("failed to write touchpoints record for customer %s", customerID), cause)
}

// NewPublishFailedError wraps a bus failure after the record was persisted.
func NewPublishFailedError(touchpointsID uuid.UUID, cause error) *shared.DomainError {
	return shared.WrapDomainError(ErrCodePublishFailed,
		fmt.Sprintf("failed to publish creation event for touchpoints record %s", touchpointsID), cause)
}
