package cli

import (
	"context"
	"fmt"
)

func (a *App) disable(ctx context.Context, args []string) error {
	dbKey, err := oneArg(args, "disable")
	if err != nil {
		return err
	}

	if err := a.coordinator.Delete(ctx, dbKey); err != nil {
		return err
	}
	if err := a.recents.Forget(ctx, dbKey); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "quick unlock disabled for %s\n", dbKey)
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	dbKey, err := oneArg(args, "status")
	if err != nil {
		return err
	}

	has, err := a.coordinator.HasPolicy(ctx, dbKey)
	if err != nil {
		return err
	}
	if has {
		fmt.Fprintf(a.out, "%s: quick unlock configured\n", dbKey)
	} else {
		fmt.Fprintf(a.out, "%s: quick unlock not configured\n", dbKey)
	}
	return nil
}
