package billing

import "errors"

var (
	// ErrInvalidTransition is returned when a state change is not permitted
	// in the record's current status, e.g. confirming an already-paid or
	// archived payment. It is the guard against a double-clicked
	// confirmation generating two next-cycle records.
	ErrInvalidTransition = errors.New("payment is not pending")

	// ErrAlreadyBilled is returned when billing activation finds an open
	// record for the computed first reference month. The store is left
	// unchanged; the caller can treat it as a no-op.
	ErrAlreadyBilled = errors.New("billing already activated for this period")

	// ErrStoreUnavailable wraps read/write failures of the document store.
	// The engine does not retry; the operator may.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrStudentNotFound  = errors.New("student not found")
	ErrStudentNotActive = errors.New("student is not active")
	ErrRecordNotFound   = errors.New("payment record not found")
)
