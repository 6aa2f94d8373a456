package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/five82/kitchen/internal/app"
)

const usage = `Usage: kitchen [flags] [command]

Commands:
  (none)          start the terminal UI
  login           log in and keep the session
  register        create an account and log in
  logout          end the stored session
  whoami          show the current user and tier
  shopping-list   export a shopping list as .xlsx
  profile         change the account emoji or username
  recipe-pdf      download a recipe as PDF
  share           create a public link to a recipe or favorite
  nutrition       look up nutrition facts for ingredients
  logs            print the end of the client log

Flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("kitchen", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path (optional)")
	prefsPath := fs.String("prefs", "", "UI preferences file path (optional)")
	refreshSeconds := fs.Int("refresh", 0, "background refresh interval in seconds (optional, defaults to 60s)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if refresh := *refreshSeconds; refresh > 0 {
		opts.RefreshEvery = refresh
	}

	if err := dispatch(ctx, opts, fs.Args()); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			// The flag set already printed the problem.
			return 2
		}
		fmt.Fprintf(os.Stderr, "kitchen: %v\n", err)
		return 1
	}
	return 0
}

// errUsage marks a subcommand flag error.
var errUsage = errors.New("usage error")

func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", errUsage, err)
}

func dispatch(ctx context.Context, opts app.Options, args []string) error {
	if len(args) == 0 {
		return app.Run(ctx, opts)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ContinueOnError)
		user := fs.String("user", "", "email or username")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		identifier, err := promptValue(*user, "Email or username: ")
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		return app.Login(ctx, opts, identifier, password)

	case "register":
		fs := flag.NewFlagSet("register", flag.ContinueOnError)
		email := fs.String("email", "", "account email")
		username := fs.String("username", "", "display name")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		mail, err := promptValue(*email, "Email: ")
		if err != nil {
			return err
		}
		name, err := promptValue(*username, "Username: ")
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		return app.Register(ctx, opts, mail, name, password)

	case "logout":
		return app.Logout(ctx, opts)

	case "whoami":
		return app.Whoami(ctx, opts)

	case "logs":
		fs := flag.NewFlagSet("logs", flag.ContinueOnError)
		lines := fs.Int("n", 50, "number of lines")
		level := fs.String("level", "info", "minimum level (debug, info, warn, error)")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return app.Logs(opts, *lines, *level)

	case "profile":
		fs := flag.NewFlagSet("profile", flag.ContinueOnError)
		emoji := fs.String("emoji", "", "account emoji")
		username := fs.String("username", "", "new username")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return app.Profile(ctx, opts, app.ProfileOptions{Emoji: *emoji, Username: *username})

	case "recipe-pdf":
		fs := flag.NewFlagSet("recipe-pdf", flag.ContinueOnError)
		id := fs.Int64("id", 0, "recipe ID")
		out := fs.String("o", "", "output file (default recipe-<id>.pdf)")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return app.RecipePDF(ctx, opts, *id, *out)

	case "share":
		fs := flag.NewFlagSet("share", flag.ContinueOnError)
		recipe := fs.Int64("recipe", 0, "recipe ID")
		favorite := fs.Int64("favorite", 0, "favorite ID")
		hours := fs.Int("hours", 0, "link lifetime in hours (default 168)")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return app.Share(ctx, opts, app.ShareOptions{RecipeID: *recipe, FavoriteID: *favorite, Hours: *hours})

	case "nutrition":
		fs := flag.NewFlagSet("nutrition", flag.ContinueOnError)
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		return app.Nutrition(ctx, opts, fs.Args())

	case "shopping-list":
		fs := flag.NewFlagSet("shopping-list", flag.ContinueOnError)
		recipes := fs.String("recipes", "", "comma-separated recipe IDs")
		favorites := fs.String("favorites", "", "comma-separated favorite IDs")
		scale := fs.Float64("scale", 1, "portion scale factor")
		out := fs.String("o", "shopping-list.xlsx", "output file")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		recipeIDs, err := parseIDs(*recipes)
		if err != nil {
			return fmt.Errorf("-recipes: %w", err)
		}
		favoriteIDs, err := parseIDs(*favorites)
		if err != nil {
			return fmt.Errorf("-favorites: %w", err)
		}
		return app.ShoppingList(ctx, opts, app.ShoppingListOptions{
			RecipeIDs:   recipeIDs,
			FavoriteIDs: favoriteIDs,
			Scale:       *scale,
			Path:        *out,
		})
	}
	return fmt.Errorf("unknown command %q", cmd)
}

var stdin = bufio.NewReader(os.Stdin)

func promptValue(value, prompt string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo from a terminal, or a plain line when
// stdin is piped.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := stdin.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
