// Package cli is an interactive harness around the quick-unlock core. It is
// not the product UI; it exists so the gated flows can be driven end to end
// from a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrival/quickvault/internal/autofill"
	"github.com/dmitrival/quickvault/internal/autolock"
	"github.com/dmitrival/quickvault/internal/clipboard"
	"github.com/dmitrival/quickvault/internal/config"
	"github.com/dmitrival/quickvault/internal/cryptox"
	"github.com/dmitrival/quickvault/internal/filex"
	"github.com/dmitrival/quickvault/internal/logging"
	"github.com/dmitrival/quickvault/internal/quickunlock"
	"github.com/dmitrival/quickvault/internal/securestore"
)

const storeFileName = "store.db"

type App struct {
	config      *config.Config
	coordinator *quickunlock.Coordinator
	guard       *clipboard.Guard
	recents     *autofill.Recents
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	// Idle lock state for the currently unlocked database.
	lockMon    *autolock.Monitor
	lockCancel context.CancelFunc
}

// NewApp builds the production wiring: the shared app-group directory, the
// device key, the SQLite-backed secure store and the components on top.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dir, err := filex.AppGroupDir(cfg.AppGroup)
	if err != nil {
		return nil, err
	}

	deviceKey, err := cryptox.EnsureDeviceKey(dir)
	if err != nil {
		return nil, err
	}

	db, err := securestore.OpenDatabase(ctx, filepath.Join(dir, storeFileName))
	if err != nil {
		return nil, err
	}

	store := securestore.NewSQLiteStore(db, deviceKey, log)

	guard, err := clipboard.New(&previewSink{out: os.Stdout}, cfg.ClipboardClearInterval, cfg.ClipboardTick, log)
	if err != nil {
		return nil, err
	}

	recents, err := autofill.NewRecents(store, cfg.RecentItemsCap, log)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      cfg,
		coordinator: quickunlock.NewCoordinator(store, log),
		guard:       guard,
		recents:     recents,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "quickvault harness (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, "qv> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if done := a.dispatch(ctx, cmd, args); done {
			return
		}
	}
}

// dispatch runs one command; the true return means quit.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	if a.lockMon != nil {
		a.lockMon.Extend()
	}

	var err error
	switch cmd {
	case "help":
		a.printHelp()
	case "enable":
		err = a.enable(ctx, args)
	case "unlock":
		err = a.unlock(ctx, args)
	case "disable":
		err = a.disable(ctx, args)
	case "status":
		err = a.status(ctx, args)
	case "clear":
		a.guard.CancelPending()
		fmt.Fprintln(a.out, "clipboard cleared")
	case "exit", "quit":
		a.lockNow()
		fmt.Fprintln(a.out, "Bye!")
		return true
	default:
		fmt.Fprintf(a.out, "unknown command %q\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
	return false
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Available commands:")
	fmt.Fprintln(a.out, "  enable <db>   set up quick unlock for a database")
	fmt.Fprintln(a.out, "  unlock <db>   run the gated quick-unlock flow")
	fmt.Fprintln(a.out, "  disable <db>  remove cached credentials")
	fmt.Fprintln(a.out, "  status <db>   show whether quick unlock is configured")
	fmt.Fprintln(a.out, "  clear         wipe the clipboard now")
	fmt.Fprintln(a.out, "  exit")
}

// startIdleLock arms the auto-lock countdown after a successful unlock. Any
// previous countdown is replaced; commands count as activity via dispatch.
func (a *App) startIdleLock(ctx context.Context, dbKey string) error {
	if a.lockCancel != nil {
		a.lockCancel()
	}

	mon, err := autolock.NewMonitor(a.config.DatabaseLockTimeout, func() {
		a.guard.CancelPending()
		fmt.Fprintf(a.out, "\n%s locked after %v idle\n", dbKey, a.config.DatabaseLockTimeout)
	}, a.log)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.lockMon = mon
	a.lockCancel = cancel
	go mon.Run(runCtx)

	return nil
}

// lockNow drops clipboard state and stops the idle countdown.
func (a *App) lockNow() {
	if a.lockCancel != nil {
		a.lockCancel()
		a.lockCancel = nil
		a.lockMon = nil
	}
	a.guard.CancelPending()
}

func oneArg(args []string, name string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <db>", name)
	}
	return args[0], nil
}
