// Command taskctl performs out-of-band administration against the taskhub database:
// health checks, schema setup, user provisioning and Firebase UID repair.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/upb/taskhub/app"
	"github.com/upb/taskhub/config"
	"github.com/upb/taskhub/internal/observability"
)

const usage = `Usage: taskctl <command> [flags]

Commands:
  ping            check database connectivity
  init-schema     create tables and indexes if missing
  user show       look a user up (--id, --firebase-uid or --email)
  user provision  create a user for a Firebase identity
  user link       point an existing user at a Firebase UID
  verify-token    run a bearer token through the authentication guard
`

// opener builds the dependency graph a command runs against
type opener func(ctx context.Context) (*app.Dependencies, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, openDependencies))
}

func openDependencies(ctx context.Context) (*app.Dependencies, error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, err
	}
	return app.NewDependencies(ctx, cfg, logger)
}

// run dispatches to a subcommand and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, open opener) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	c := &cli{stdout: stdout, stderr: stderr, open: open}

	var err error
	switch args[0] {
	case "ping":
		err = c.ping(ctx, args[1:])
	case "init-schema":
		err = c.initSchema(ctx, args[1:])
	case "user":
		err = c.user(ctx, args[1:])
	case "verify-token":
		err = c.verifyToken(ctx, args[1:])
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "taskctl %s: %v\n", args[0], err)
		if _, ok := err.(usageError); ok {
			return 2
		}
		return 1
	}
	return 0
}
