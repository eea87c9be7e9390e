package cli

import (
	"context"
	"fmt"

	"github.com/dmitrival/quickvault/internal/cryptox"
	"github.com/dmitrival/quickvault/internal/quickunlock"
)

// enable walks through quick-unlock enrollment for one database: choose the
// gates, then cache the unlock secret behind them.
func (a *App) enable(ctx context.Context, args []string) error {
	dbKey, err := oneArg(args, "enable")
	if err != nil {
		return err
	}

	passcode, err := getSimpleText(a.reader, fmt.Sprintf("Passcode (%d digits, empty to skip)", quickunlock.PasscodeLength), a.out)
	if err != nil {
		return err
	}

	biometryAnswer, err := getSimpleText(a.reader, "Enable biometric gate? (y/N)", a.out)
	if err != nil {
		return err
	}
	biometry := biometryAnswer == "y" || biometryAnswer == "Y"

	policy, err := quickunlock.NewProtectionPolicy(passcode, biometry)
	if err != nil {
		return err
	}

	password, err := getSecret("Master password to cache", a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	secret := quickunlock.CachedUnlockSecret{Password: string(password)}
	if err := a.coordinator.Save(ctx, dbKey, secret, policy); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "quick unlock enabled for %s\n", dbKey)
	return nil
}
