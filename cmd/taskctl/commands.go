package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"github.com/upb/taskhub/app"
	"github.com/upb/taskhub/auth"
	"github.com/upb/taskhub/services"
)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	open   opener
}

// usageError marks bad invocations; they exit with status 2
type usageError string

func (e usageError) Error() string { return string(e) }

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) withDeps(ctx context.Context, fn func(*app.Dependencies) error) error {
	deps, err := c.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = deps.Close(context.Background()) }()
	return fn(deps)
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) ping(ctx context.Context, args []string) error {
	if err := c.flagSet("ping").Parse(args); err != nil {
		return usageError(err.Error())
	}
	return c.withDeps(ctx, func(deps *app.Dependencies) error {
		if err := deps.DB.HealthCheck(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "database: ok")
		return nil
	})
}

func (c *cli) initSchema(ctx context.Context, args []string) error {
	if err := c.flagSet("init-schema").Parse(args); err != nil {
		return usageError(err.Error())
	}
	return c.withDeps(ctx, func(deps *app.Dependencies) error {
		if err := deps.DB.InitSchema(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "schema: ok")
		return nil
	})
}

func (c *cli) user(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("expected one of: show, provision, link")
	}
	switch args[0] {
	case "show":
		return c.userShow(ctx, args[1:])
	case "provision":
		return c.userProvision(ctx, args[1:])
	case "link":
		return c.userLink(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown user command %q", args[0]))
	}
}

func (c *cli) userShow(ctx context.Context, args []string) error {
	fs := c.flagSet("user show")
	id := fs.String("id", "", "local user id")
	firebaseUID := fs.String("firebase-uid", "", "Firebase subject")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	var q services.UserQuery
	switch {
	case *id != "":
		parsed, err := uuid.Parse(*id)
		if err != nil {
			return usageError("--id must be a UUID")
		}
		q.ID = parsed
	case *firebaseUID != "":
		q.FirebaseUID = *firebaseUID
	case *email != "":
		q.Email = *email
	default:
		return usageError("one of --id, --firebase-uid or --email is required")
	}

	return c.withDeps(ctx, func(deps *app.Dependencies) error {
		user, err := deps.Users.Find(ctx, q)
		if err != nil {
			return err
		}
		return c.printJSON(userView{
			ID:          user.ID,
			FirebaseUID: user.FirebaseUID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
		})
	})
}

func (c *cli) userProvision(ctx context.Context, args []string) error {
	fs := c.flagSet("user provision")
	var in services.ProvisionInput
	fs.StringVar(&in.FirebaseUID, "firebase-uid", "", "Firebase subject (required)")
	fs.StringVar(&in.Email, "email", "", "email address (required)")
	fs.StringVar(&in.DisplayName, "name", "", "display name")
	fs.StringVar(&in.PhotoURL, "photo-url", "", "profile photo URL")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	return c.withDeps(ctx, func(deps *app.Dependencies) error {
		user, err := deps.Users.Provision(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "provisioned user %s for %s\n", user.ID, user.Email)
		return nil
	})
}

func (c *cli) userLink(ctx context.Context, args []string) error {
	fs := c.flagSet("user link")
	email := fs.String("email", "", "email of the existing user (required)")
	firebaseUID := fs.String("firebase-uid", "", "Firebase subject to link (required)")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if *email == "" || *firebaseUID == "" {
		return usageError("--email and --firebase-uid are required")
	}

	return c.withDeps(ctx, func(deps *app.Dependencies) error {
		user, err := deps.Users.LinkFirebaseUID(ctx, *email, *firebaseUID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "user %s is linked to %s\n", user.ID, user.FirebaseUID)
		return nil
	})
}

func (c *cli) verifyToken(ctx context.Context, args []string) error {
	fs := c.flagSet("verify-token")
	token := fs.String("token", "", "Firebase ID token (required)")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if *token == "" {
		return usageError("--token is required")
	}

	return c.withDeps(ctx, func(deps *app.Dependencies) error {
		principal, err := deps.Guard.Authenticate(ctx, "Bearer "+*token)
		if err != nil {
			var authErr *auth.Error
			if errors.As(err, &authErr) {
				fmt.Fprintf(c.stdout, "rejected: %s\n", authErr.Kind)
			}
			return err
		}
		return c.printJSON(principal)
	})
}

// userView exposes the Firebase UID that the API hides
type userView struct {
	ID          uuid.UUID `json:"id"`
	FirebaseUID string    `json:"firebase_uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
}
