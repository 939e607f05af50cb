// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command console is the operator's terminal client for the back office.
//
// It signs in against the same auth provider as the API and keeps the
// session in a [session.Store] for as long as it runs:
//
//	gravadora-console --email ana@gravadora.com            # sign in, print profile and menu
//	gravadora-console --email ana@gravadora.com --watch    # stay signed in, follow revocations
//	gravadora-console --create --email new@gravadora.com --role financeiro
//
// The password is read from the terminal with echo disabled, or from
// --password-file. Configuration comes from the same environment variables
// as the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/taibuivan/gravadora/internal/access"
	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/config"
	"github.com/taibuivan/gravadora/internal/platform/constants"
	pgstore "github.com/taibuivan/gravadora/internal/platform/postgres"
	redisstore "github.com/taibuivan/gravadora/internal/platform/redis"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/internal/session"
)

type options struct {
	email        string
	passwordFile string
	watch        bool
	create       bool
	name         string
	role         string
	verbose      bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options

	flagSet := pflag.NewFlagSet("gravadora-console", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.email, "email", "e", "", "account email")
	flagSet.StringVar(&opts.passwordFile, "password-file", "", "read the password from this file instead of the terminal")
	flagSet.BoolVarP(&opts.watch, "watch", "w", false, "stay signed in and report session changes until interrupted")
	flagSet.BoolVar(&opts.create, "create", false, "create the account and its profile instead of signing in")
	flagSet.StringVar(&opts.name, "name", "", "display name for --create (default: part of the email before @)")
	flagSet.StringVar(&opts.role, "role", string(sec.RoleProducao), "role for --create: "+strings.Join(sec.Strings(), ", "))
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.email == "" {
		flagSet.Usage()
		return errors.New("--email is required")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With(slog.String("app", "gravadora-console"))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, cfg.Timezone, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	identityService := identity.NewService(
		identity.NewAccountRepository(pool),
		identity.NewSessionRepository(rdb),
		identity.NewEventBus(rdb, logger),
		tokens,
		logger,
	)
	profileRepository := profile.NewPostgresRepository(pool)
	resolver := profile.NewResolver(profileRepository, cfg.DefaultRole(), cfg.ProfileCacheTTL, logger)

	password, err := readPassword(opts.passwordFile)
	if err != nil {
		return err
	}

	if opts.create {
		return createUser(ctx, identityService, profile.NewService(profileRepository, resolver), opts, password)
	}

	client := identity.NewClient(identityService, logger)
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("subscribing to auth events: %w", err)
	}
	defer client.Close()

	store := session.New(client, resolver, session.Options{Logger: logger})
	store.Init(ctx)
	defer store.Close()

	select {
	case <-store.Ready():
	case <-time.After(10 * time.Second):
		return errors.New("timed out restoring the session")
	}

	if err := store.Login(ctx, opts.email, password); err != nil {
		return describeAuthError(err)
	}

	current := store.CurrentProfile()
	if current == nil {
		return errors.New("signed in, but the profile could not be loaded (run with --verbose for details)")
	}
	printProfile(current)

	if !opts.watch {
		store.Logout(context.Background())
		return nil
	}

	unsubscribe := client.OnAuthStateChange(func(change identity.StateChange) {
		fmt.Fprintf(os.Stderr, "%s  %s\n", time.Now().Format(time.TimeOnly), change.Event)
	})
	defer unsubscribe()

	fmt.Fprintln(os.Stderr, "watching session; press Ctrl-C to sign out")
	<-ctx.Done()

	store.Logout(context.Background())
	fmt.Fprintln(os.Stderr, "signed out")
	return nil
}

// readPassword reads from path, or prompts on the terminal when path is empty or "-".
func readPassword(path string) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	stdin := int(os.Stdin.Fd())
	if !term.IsTerminal(stdin) {
		return "", errors.New("no terminal available for the password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func createUser(ctx context.Context, accounts *identity.Service, profiles *profile.Service, opts options, password string) error {
	role, err := sec.ParseRole(opts.role)
	if err != nil || !role.IsAssignable() {
		return fmt.Errorf("--role must be one of %s", strings.Join(sec.Strings(), ", "))
	}

	who, err := accounts.CreateAccount(ctx, opts.email, password)
	if err != nil {
		return err
	}

	created, err := profiles.Provision(ctx, who, opts.name, role)
	if err != nil {
		if rollbackErr := accounts.DeleteAccount(context.WithoutCancel(ctx), who.ID); rollbackErr != nil {
			return fmt.Errorf("account %s created but its profile was not (rollback failed: %v): %w", who.ID, rollbackErr, err)
		}
		return fmt.Errorf("create profile for %s: %w", opts.email, err)
	}

	fmt.Printf("created %s\n", created.ID)
	printProfile(created)
	return nil
}

func printProfile(current *profile.Profile) {
	fmt.Printf("%-8s %s\n", "name", current.Name)
	fmt.Printf("%-8s %s\n", "email", current.Email)
	fmt.Printf("%-8s %s\n", "role", current.Role)

	routes := access.Navigation(current)
	paths := make([]string, len(routes))
	for i, route := range routes {
		paths[i] = route.Path
	}
	fmt.Printf("%-8s %s\n", "menu", strings.Join(paths, " "))
}

func describeAuthError(err error) error {
	var authErr *identity.AuthError
	if !errors.As(err, &authErr) {
		return err
	}

	switch authErr.Code {
	case identity.CodeEmailNotConfirmed:
		return errors.New("email not confirmed; ask an administrator to confirm the account")
	case identity.CodeInvalidCredentials:
		return errors.New("invalid email or password")
	default:
		return authErr
	}
}
