package quickunlock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/dmitrival/quickvault/internal/logging"
	"github.com/dmitrival/quickvault/internal/securestore"
)

// Store keys: the secret lives under the database key itself, the policy
// under the database key plus this suffix.
const protectionSuffix = "_protection"

// PasscodeVerifier checks a user-supplied code against the stored one. It
// may block on UI input for as long as it likes; the attempt stays in
// flight. Returning an error aborts the attempt without rejecting the code.
type PasscodeVerifier func(ctx context.Context, stored string) (bool, error)

// BiometricEvaluator runs the platform biometric prompt. A nil return means
// the user passed; failures should be one of the auth sentinels, possibly
// wrapped.
type BiometricEvaluator func(ctx context.Context) error

// Coordinator orchestrates gated retrieval and storage of cached unlock
// secrets for one client. Attempts are strictly serialized: while one
// RequestUnlock is outstanding, further calls fail fast instead of stacking
// a second biometric prompt on the first.
type Coordinator struct {
	store    securestore.Store
	log      logging.Logger
	inFlight atomic.Bool
}

func NewCoordinator(store securestore.Store, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Discard()
	}
	return &Coordinator{store: store, log: log}
}

// RequestUnlock runs the fixed gate sequence for dbKey and returns the
// cached secret on success:
//
//  1. Load the protection policy; absence is ErrNotFound.
//  2. If a passcode gate exists, run verify against the stored code. A
//     rejection aborts with ErrPasscodeRejected before biometrics are ever
//     touched, so a wrong code neither triggers the OS dialog nor reveals
//     whether biometry is configured.
//  3. If the biometric gate exists, run evaluate; failure aborts with a
//     BiometricError wrapping the cause.
//  4. Read the cached secret. A policy without a secret is an inconsistent
//     store and surfaces as ErrNotFound.
//
// The in-flight guard is released on every exit path, including verifier
// and evaluator errors.
func (c *Coordinator) RequestUnlock(ctx context.Context, dbKey string, verify PasscodeVerifier, evaluate BiometricEvaluator) (*CachedUnlockSecret, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInProgress
	}
	defer c.inFlight.Store(false)

	policy, found, err := c.loadPolicy(ctx, dbKey)
	if err != nil {
		return nil, &StoreError{Op: "read policy", Err: err}
	}
	if !found {
		return nil, ErrNotFound
	}

	if policy.Passcode != "" {
		if verify == nil {
			return nil, ErrPasscodeRejected
		}
		ok, err := verify(ctx, policy.Passcode)
		if err != nil {
			return nil, fmt.Errorf("quickunlock: passcode verifier: %w", err)
		}
		if !ok {
			return nil, ErrPasscodeRejected
		}
	}

	if policy.BiometryEnabled {
		if evaluate == nil {
			return nil, &BiometricError{Cause: ErrBiometryUnavailable}
		}
		if err := evaluate(ctx); err != nil {
			return nil, &BiometricError{Cause: err}
		}
	}

	secret, found, err := c.loadSecret(ctx, dbKey)
	if err != nil {
		return nil, &StoreError{Op: "read secret", Err: err}
	}
	if !found {
		c.log.Warn(ctx, "protection policy exists but cached secret is missing", "db", dbKey)
		return nil, ErrNotFound
	}

	return secret, nil
}

// Save persists the policy and secret for dbKey together. The policy is
// written first: a crash between the writes may leave a policy without a
// secret, which the read path reports as ErrNotFound, but never a secret
// without its gate.
func (c *Coordinator) Save(ctx context.Context, dbKey string, secret CachedUnlockSecret, policy ProtectionPolicy) error {
	if !policy.Protects() {
		return ErrEmptyPolicy
	}
	if policy.Passcode != "" && !validPasscode(policy.Passcode) {
		return ErrBadPasscode
	}
	if !secret.Usable() {
		return ErrEmptySecret
	}

	policyPayload, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("quickunlock: encode policy: %w", err)
	}
	secretPayload, err := json.Marshal(secret)
	if err != nil {
		return fmt.Errorf("quickunlock: encode secret: %w", err)
	}

	if err := c.store.Set(ctx, dbKey+protectionSuffix, string(policyPayload)); err != nil {
		return &StoreError{Op: "write policy", Err: err}
	}
	if err := c.store.Set(ctx, dbKey, string(secretPayload)); err != nil {
		return &StoreError{Op: "write secret", Err: err}
	}
	return nil
}

// Delete removes the cached credentials for dbKey. The secret goes first so
// a crash mid-delete never leaves a usable secret behind its deleted gate;
// removing the now-pointless policy is best-effort.
func (c *Coordinator) Delete(ctx context.Context, dbKey string) error {
	if err := c.store.Delete(ctx, dbKey); err != nil {
		return &StoreError{Op: "delete secret", Err: err}
	}
	if err := c.store.Delete(ctx, dbKey+protectionSuffix); err != nil {
		c.log.Warn(ctx, "secret removed but policy cleanup failed", "db", dbKey, "error", err)
	}
	return nil
}

// HasPolicy reports whether quick unlock is configured for dbKey, for the
// settings UI. Store denial is surfaced; a corrupt record reads as absent.
func (c *Coordinator) HasPolicy(ctx context.Context, dbKey string) (bool, error) {
	_, found, err := c.loadPolicy(ctx, dbKey)
	if err != nil {
		return false, &StoreError{Op: "read policy", Err: err}
	}
	return found, nil
}

// loadPolicy reads and decodes the policy record. Malformed JSON and
// gate-less records are logged and treated as absent: both force a full
// master-password unlock and re-enrollment instead of a crash.
func (c *Coordinator) loadPolicy(ctx context.Context, dbKey string) (ProtectionPolicy, bool, error) {
	raw, found, err := c.store.Get(ctx, dbKey+protectionSuffix)
	if err != nil || !found {
		return ProtectionPolicy{}, false, err
	}

	var policy ProtectionPolicy
	if err := json.Unmarshal([]byte(raw), &policy); err != nil {
		c.log.Warn(ctx, "malformed protection policy, treating as absent", "db", dbKey, "error", err)
		return ProtectionPolicy{}, false, nil
	}
	if !policy.Protects() {
		c.log.Warn(ctx, "stored policy protects nothing, treating as absent", "db", dbKey)
		return ProtectionPolicy{}, false, nil
	}
	return policy, true, nil
}

func (c *Coordinator) loadSecret(ctx context.Context, dbKey string) (*CachedUnlockSecret, bool, error) {
	raw, found, err := c.store.Get(ctx, dbKey)
	if err != nil || !found {
		return nil, false, err
	}

	var secret CachedUnlockSecret
	if err := json.Unmarshal([]byte(raw), &secret); err != nil {
		c.log.Warn(ctx, "malformed cached secret, treating as absent", "db", dbKey, "error", err)
		return nil, false, nil
	}
	return &secret, true, nil
}
