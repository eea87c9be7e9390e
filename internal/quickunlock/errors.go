package quickunlock

import (
	"errors"
	"fmt"
)

// Unlock-flow sentinels. Callers should use errors.Is to match these values.
var (
	// ErrAlreadyInProgress is returned when a second unlock attempt starts
	// while one is outstanding on the same coordinator.
	ErrAlreadyInProgress = errors.New("quickunlock: attempt already in progress")

	// ErrNotFound is returned when no cached credentials exist for the
	// database, including the inconsistent "policy present, secret absent"
	// state, which is surfaced rather than silently repaired.
	ErrNotFound = errors.New("quickunlock: no cached credentials")

	// ErrPasscodeRejected is returned when the passcode gate fails. The
	// biometric gate is never reached in that case.
	ErrPasscodeRejected = errors.New("quickunlock: passcode rejected")

	// ErrEmptyPolicy rejects a policy with no gate at all. Such a policy is
	// represented by the absence of a stored record, never persisted.
	ErrEmptyPolicy = errors.New("quickunlock: policy protects nothing")

	// ErrBadPasscode rejects a passcode that is not the fixed-length numeric
	// code the UI collects.
	ErrBadPasscode = errors.New("quickunlock: malformed passcode")

	// ErrEmptySecret rejects a cached secret carrying neither a password nor
	// key file data.
	ErrEmptySecret = errors.New("quickunlock: unusable cached secret")
)

// Biometric evaluation sentinels, reported by platform evaluators and
// carried to the caller inside a BiometricError.
var (
	ErrUserCanceled        = errors.New("auth: user canceled")
	ErrBiometryUnavailable = errors.New("auth: biometry unavailable")
	ErrBiometryLockout     = errors.New("auth: biometry locked out")
)

// BiometricError wraps the cause of a failed biometric gate so callers can
// both recognize the gate that failed and inspect the platform reason.
type BiometricError struct {
	Cause error
}

func (e *BiometricError) Error() string {
	return fmt.Sprintf("quickunlock: biometric gate failed: %v", e.Cause)
}

func (e *BiometricError) Unwrap() error { return e.Cause }

// StoreError wraps a secure-store failure encountered during an unlock or
// save flow.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("quickunlock: store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
