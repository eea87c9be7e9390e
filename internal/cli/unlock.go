package cli

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrival/quickvault/internal/cryptox"
	"github.com/dmitrival/quickvault/internal/quickunlock"
)

// unlock runs the gated retrieval flow. The harness plays both platform
// roles: the passcode prompt and the (simulated) biometric dialog.
func (a *App) unlock(ctx context.Context, args []string) error {
	dbKey, err := oneArg(args, "unlock")
	if err != nil {
		return err
	}

	verify := func(_ context.Context, stored string) (bool, error) {
		entered, err := getSecret("Passcode", a.out)
		if err != nil {
			return false, err
		}
		defer cryptox.Wipe(entered)
		return subtle.ConstantTimeCompare(entered, []byte(stored)) == 1, nil
	}

	evaluate := func(_ context.Context) error {
		answer, err := getSimpleText(a.reader, "Biometric check (y = pass)", a.out)
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			return quickunlock.ErrUserCanceled
		}
		return nil
	}

	secret, err := a.coordinator.RequestUnlock(ctx, dbKey, verify, evaluate)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "unlocked %s\n", dbKey)
	if err := a.startIdleLock(ctx, dbKey); err != nil {
		return err
	}
	if secret.KeyFileName != "" {
		fmt.Fprintf(a.out, "key file: %s (%d bytes)\n", secret.KeyFileName, len(secret.KeyFileData))
	}

	if secret.Password == "" {
		return nil
	}

	cd, err := a.guard.Copy(secret.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "password on clipboard, clears at %s\n", cd.Deadline().Format("15:04:05"))

	// Drain progress in the background so the countdown completion shows up
	// without blocking the prompt.
	go func() {
		for range cd.Progress() {
		}
	}()

	return nil
}
