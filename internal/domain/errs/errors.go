package errs

import "errors"

// Shared error taxonomy for the lifecycle state machines. The transport
// layer maps these to response codes; usecases match with errors.Is.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrGateNotSatisfied  = errors.New("required documents missing or unverified")
	ErrConflict          = errors.New("stale state, re-read and retry")
	ErrDuplicateContract = errors.New("loan already has an open contract")
	ErrInvalidLoanTerms  = errors.New("invalid loan terms")
)
