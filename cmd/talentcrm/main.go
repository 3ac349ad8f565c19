package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"talentcrm/internal/app"
	"talentcrm/internal/domain/access"
	"talentcrm/internal/domain/contract"
	"talentcrm/internal/domain/people"
	"talentcrm/internal/model"
	"talentcrm/internal/platform/config"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/logging"
	"talentcrm/internal/platform/seed"
)

var (
	errUsage     = errors.New("usage")
	errForbidden = errors.New("not permitted for this role")
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "seed":
		err = runSeed(ctx, a, out)
	case "register":
		err = runRegister(ctx, a, rest, out)
	case "login":
		err = runLogin(ctx, a, rest, out)
	case "search":
		err = runSearch(ctx, a, rest, out)
	case "contract-pdf":
		err = runContractPDF(ctx, a, rest, out)
	case "fees":
		err = runFees(ctx, a, rest, out)
	case "set-password":
		err = runSetPassword(ctx, a, rest, out)
	case "assign-role":
		err = runAssignRole(ctx, a, rest, out)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	if err := a.WriteMetrics(); err != nil {
		logger.WarnContext(ctx, "metrics textfile not written", "error", err)
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: talentcrm <command> [flags]

commands:
  seed                                   create default roles and the admin account
  register -username -password -first -last [-email -phone]
  login -user -password                  print a session token
  search (-user -password | -token) <query>
  contract-pdf (-user -password | -token) -id N -out file.pdf
  fees (-user -password | -token)        total agency fees of approved contracts
  set-password (-user -password | -token) -user-id N -new-password P
  assign-role (-user -password | -token) -user-id N -role NAME`)
}

// credentials are shared by every command that acts on behalf of a user.
type credentials struct {
	username string
	password string
	token    string
}

func (c *credentials) register(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "user", "", "username")
	fs.StringVar(&c.password, "password", "", "password")
	fs.StringVar(&c.token, "token", "", "session token from login")
}

func (c credentials) resolve(ctx context.Context, a *app.App) (model.User, error) {
	if c.token != "" {
		user, _, err := a.Auth.ParseSession(ctx, c.token)
		return user, err
	}
	if c.username == "" {
		return model.User{}, fmt.Errorf("%w: -user or -token is required", errUsage)
	}
	return a.Auth.Authenticate(ctx, c.username, c.password)
}

func parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func runSeed(ctx context.Context, a *app.App, out io.Writer) error {
	res, err := seed.Run(ctx, a.Repos, seed.Options{
		AdminUsername: a.Config.SeedAdminUsername,
		AdminPassword: a.Config.SeedAdminPassword,
		BcryptCost:    a.Config.BcryptCost,
		Logger:        a.Logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "roles created: %d, admin created: %t\n", res.RolesCreated, res.AdminCreated)
	return nil
}

func runRegister(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var in people.Input
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	fs.StringVar(&in.FirstName, "first", "", "first name")
	fs.StringVar(&in.LastName, "last", "", "last name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := a.Auth.Register(ctx, in, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "registered user %d (%s)\n", user.UserID, user.Username)
	return nil
}

func runLogin(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	var creds credentials
	creds.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	creds.token = ""
	user, err := creds.resolve(ctx, a)
	if err != nil {
		return err
	}
	token, err := a.Auth.IssueSession(ctx, user)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}

func runSearch(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var creds credentials
	creds.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := creds.resolve(ctx, a)
	if err != nil {
		return err
	}
	hits, err := a.Search.Search(ctx, user, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	for _, hit := range hits {
		parts := make([]string, 0, len(hit.Fields))
		for _, f := range hit.Fields {
			parts = append(parts, f.Name+"="+f.Value)
		}
		fmt.Fprintf(out, "%s #%d  %s\n", hit.Collection, hit.ID, strings.Join(parts, " "))
	}
	if len(hits) == 0 {
		fmt.Fprintln(out, "no matches")
	}
	return nil
}

func runContractPDF(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("contract-pdf", flag.ContinueOnError)
	var creds credentials
	creds.register(fs)
	id := fs.Int64("id", 0, "contract id")
	path := fs.String("out", "", "output file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 || *path == "" {
		return fmt.Errorf("%w: -id and -out are required", errUsage)
	}
	user, err := creds.resolve(ctx, a)
	if err != nil {
		return err
	}
	if err := requireView(ctx, a, user, docstore.CollectionContracts); err != nil {
		return err
	}

	f, err := os.Create(*path)
	if err != nil {
		return err
	}
	if err := a.Contracts.RenderPDF(ctx, *id, f); err != nil {
		_ = f.Close()
		_ = os.Remove(*path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", *path)
	return nil
}

func runFees(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fees", flag.ContinueOnError)
	var creds credentials
	creds.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := creds.resolve(ctx, a)
	if err != nil {
		return err
	}
	if err := requireView(ctx, a, user, docstore.CollectionContracts); err != nil {
		return err
	}
	contracts, err := a.Contracts.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "approved agency fees: %s\n", contract.TotalAgencyFees(contracts).StringFixed(2))
	return nil
}

func runSetPassword(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("set-password", flag.ContinueOnError)
	var creds credentials
	creds.register(fs)
	userID := fs.Int64("user-id", 0, "user id")
	password := fs.String("new-password", "", "new password")
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := creds.resolve(ctx, a)
	if err != nil {
		return err
	}
	if user.UserID != *userID {
		if err := requireEdit(ctx, a, user, docstore.CollectionUsers); err != nil {
			return err
		}
	}
	if err := a.Auth.SetPassword(ctx, *userID, *password); err != nil {
		return err
	}
	fmt.Fprintf(out, "password updated for user %d\n", *userID)
	return nil
}

func runAssignRole(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("assign-role", flag.ContinueOnError)
	var creds credentials
	creds.register(fs)
	userID := fs.Int64("user-id", 0, "user id")
	role := fs.String("role", "", "role name")
	if err := parse(fs, args); err != nil {
		return err
	}
	actor, err := creds.resolve(ctx, a)
	if err != nil {
		return err
	}
	if err := requireEdit(ctx, a, actor, docstore.CollectionUsers); err != nil {
		return err
	}
	user, err := a.Auth.AssignRole(ctx, *userID, *role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "user %d now has role %s\n", user.UserID, *role)
	return nil
}

func requireView(ctx context.Context, a *app.App, user model.User, collection string) error {
	return require(ctx, a, user, collection, access.ActionView)
}

func requireEdit(ctx context.Context, a *app.App, user model.User, collection string) error {
	return require(ctx, a, user, collection, access.ActionEdit)
}

func require(ctx context.Context, a *app.App, user model.User, collection, action string) error {
	policy, err := a.Policy(ctx)
	if err != nil {
		return err
	}
	if !policy.Allowed(user, access.Permission(collection, action)) {
		return fmt.Errorf("%s %s: %w", action, collection, errForbidden)
	}
	return nil
}
