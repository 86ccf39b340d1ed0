package api

import "errors"

// Status is the outcome class of a registry operation, as reported to
// callers that deal in return codes instead of errors.
type Status int

const (
	// Success operation completed.
	Success Status = iota
	// Failure operation is inconsistent with current state, like a
	// duplicate or a missing key.
	Failure
	// AllocationError underlying storage could not grow.
	AllocationError
	// InvalidInput arguments violate their domain constraints.
	InvalidInput
)

func (st Status) String() string {
	switch st {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case AllocationError:
		return "ALLOCATION_ERROR"
	case InvalidInput:
		return "INVALID_INPUT"
	}
	panic("unexpected status") // should never reach here
}

// StatusOf classify err. A nil error is Success, any error that is
// neither ErrorInvalidInput nor ErrorOutofMemory is a Failure.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrorInvalidInput):
		return InvalidInput
	case errors.Is(err, ErrorOutofMemory):
		return AllocationError
	}
	return Failure
}
