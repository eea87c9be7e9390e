package quickunlock

// PasscodeLength is the length of the local numeric code the settings UI
// collects when the passcode gate is enabled.
const PasscodeLength = 4

// ProtectionPolicy records which local gates protect a database's cached
// unlock secret. A policy with no gate is unrepresentable as a stored
// record: NewProtectionPolicy refuses to build one, and the read path treats
// such a record as absent.
//
// Equality is structural; two policies compare equal with ==.
type ProtectionPolicy struct {
	// Passcode is the stored local code, empty when the gate is off.
	Passcode string `json:"passcode,omitempty"`

	// BiometryEnabled turns the platform biometric gate on.
	BiometryEnabled bool `json:"biometry"`
}

// NewProtectionPolicy validates and builds a policy. It fails with
// ErrEmptyPolicy when neither gate is enabled and with ErrBadPasscode when
// the passcode is present but not a PasscodeLength-digit numeric code.
func NewProtectionPolicy(passcode string, biometryEnabled bool) (ProtectionPolicy, error) {
	if passcode == "" && !biometryEnabled {
		return ProtectionPolicy{}, ErrEmptyPolicy
	}
	if passcode != "" && !validPasscode(passcode) {
		return ProtectionPolicy{}, ErrBadPasscode
	}
	return ProtectionPolicy{Passcode: passcode, BiometryEnabled: biometryEnabled}, nil
}

// Protects reports whether at least one gate is enabled. A decoded record
// failing this check came from a broken writer and is treated as absent.
func (p ProtectionPolicy) Protects() bool {
	return p.Passcode != "" || p.BiometryEnabled
}

func validPasscode(code string) bool {
	if len(code) != PasscodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
