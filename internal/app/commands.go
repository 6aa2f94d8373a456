package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/kitchen/internal/config"
	"github.com/five82/kitchen/internal/export"
	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/logger"
	"github.com/five82/kitchen/internal/logtail"
	"github.com/five82/kitchen/internal/tier"
)

// ErrNotLoggedIn is returned by commands that need a stored session.
var ErrNotLoggedIn = errors.New("not logged in; run kitchen login first")

// Login authenticates and keeps the session for later runs.
func Login(ctx context.Context, opts Options, identifier, password string) error {
	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	user, err := svc.auth.Login(ctx, identifier, password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.stdout(), "Logged in as %s (%s)\n", user.Username, svc.auth.TierInfo().Name)
	return err
}

// Register creates an account and logs in with it.
func Register(ctx context.Context, opts Options, email, username, password string) error {
	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	user, err := svc.auth.Register(ctx, email, username, password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.stdout(), "Registered and logged in as %s\n", user.Username)
	return err
}

// Logout ends the stored session.
func Logout(ctx context.Context, opts Options) error {
	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		_, err = fmt.Fprintln(opts.stdout(), "Not logged in")
		return err
	}
	svc.auth.Logout(ctx)
	_, err = fmt.Fprintln(opts.stdout(), "Logged out")
	return err
}

// Whoami prints the current user, refreshed from the backend when reachable.
func Whoami(ctx context.Context, opts Options) error {
	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	user, ok := svc.auth.RefreshUser(ctx)
	if !ok {
		if user, ok = svc.auth.CurrentUser(); !ok {
			return ErrNotLoggedIn
		}
	}
	info := tier.Lookup(user.SubscriptionTier)

	out := opts.stdout()
	fmt.Fprintf(out, "User:    %s <%s>\n", user.Username, user.Email)
	fmt.Fprintf(out, "Tier:    %s\n", info.Name)
	if user.IsAdmin {
		fmt.Fprintln(out, "Admin:   yes")
	}
	limit := info.Recipes.String()
	if user.DailyLimit > 0 && !info.Recipes.Unlimited {
		limit = fmt.Sprint(user.DailyLimit)
	}
	fmt.Fprintf(out, "Recipes: %d/%s today\n", user.DailyRecipeCount, limit)
	if exp, ok := svc.auth.TokenExpiry(); ok {
		fmt.Fprintf(out, "Session: expires %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}

// ShoppingListOptions select what goes on an exported shopping list.
type ShoppingListOptions struct {
	RecipeIDs   []int64
	FavoriteIDs []int64
	Scale       float64
	Path        string
}

// ShoppingList generates a shopping list and writes it as an xlsx workbook.
func ShoppingList(ctx context.Context, opts Options, req ShoppingListOptions) error {
	if len(req.RecipeIDs) == 0 && len(req.FavoriteIDs) == 0 {
		return errors.New("shopping list needs at least one recipe or favorite")
	}
	if req.Path == "" {
		return errors.New("shopping list needs an output path")
	}

	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	if err := svc.requireFeature(tier.ShoppingLists); err != nil {
		return err
	}

	list, err := svc.client.GenerateShoppingList(ctx, kitchen.ShoppingListRequest{
		RecipeIDs:   req.RecipeIDs,
		FavoriteIDs: req.FavoriteIDs,
		ScaleFactor: req.Scale,
	})
	if err != nil {
		return err
	}
	if err := export.SaveXLSX(req.Path, *list); err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.stdout(), "Wrote %d items to %s\n", len(list.Items), req.Path)
	return err
}

// Logs prints the last lines of the client log at or above level.
func Logs(opts Options, lines int, level string) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	min, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	raw, err := logtail.Read(cfg.LogPath, lines)
	if err != nil {
		return err
	}
	out := opts.stdout()
	for _, line := range logtail.FormatLines(raw, min) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// requireFeature fails unless the stored user's tier unlocks f.
func (s *services) requireFeature(f tier.Feature) error {
	if tier.Has(s.auth.TierInfo().Tier, s.isAdmin(), f) {
		return nil
	}
	return fmt.Errorf("%s requires the %s tier", f, tier.Describe(tier.Required(f)).Name)
}

func (s *services) isAdmin() bool {
	user, ok := s.auth.CurrentUser()
	return ok && user.IsAdmin
}

// ProfileOptions are the account fields the profile command can change.
// Empty fields are left alone.
type ProfileOptions struct {
	Emoji    string
	Username string
}

// Profile updates the account and the stored user snapshot.
func Profile(ctx context.Context, opts Options, req ProfileOptions) error {
	var update kitchen.UserUpdate
	if v := strings.TrimSpace(req.Emoji); v != "" {
		update.Emoji = &v
	}
	if v := strings.TrimSpace(req.Username); v != "" {
		update.Username = &v
	}
	if update.Emoji == nil && update.Username == nil {
		return errors.New("profile needs -emoji or -username")
	}

	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	user, err := svc.auth.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	name := user.Username
	if user.Emoji != "" {
		name = user.Emoji + " " + name
	}
	_, err = fmt.Fprintf(opts.stdout(), "Profile updated: %s\n", name)
	return err
}

// RecipePDF downloads a recipe as PDF. Favorites export on every tier;
// other recipes need the PDF export feature.
func RecipePDF(ctx context.Context, opts Options, recipeID int64, path string) error {
	if recipeID <= 0 {
		return errors.New("recipe pdf needs a recipe id")
	}
	if path == "" {
		path = fmt.Sprintf("recipe-%d.pdf", recipeID)
	}

	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	if err := svc.requireFeature(tier.PDFExport); err != nil {
		check, checkErr := svc.client.CheckFavorite(ctx, recipeID)
		if checkErr != nil {
			return checkErr
		}
		if !check.IsFavorite {
			return err
		}
	}

	data, err := svc.client.ExportRecipePDF(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.stdout(), "Wrote recipe %d to %s\n", recipeID, path)
	return err
}

// ShareOptions select what a share link points at. Exactly one of
// RecipeID and FavoriteID is set.
type ShareOptions struct {
	RecipeID   int64
	FavoriteID int64
	Hours      int
}

// Share creates a public link for a recipe or favorite.
func Share(ctx context.Context, opts Options, req ShareOptions) error {
	if (req.RecipeID > 0) == (req.FavoriteID > 0) {
		return errors.New("share needs exactly one of -recipe or -favorite")
	}

	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	if err := svc.requireFeature(tier.ShareLinks); err != nil {
		return err
	}

	link := kitchen.ShareLinkRequest{ExpiresHours: req.Hours}
	if req.RecipeID > 0 {
		link.RecipeID = &req.RecipeID
	} else {
		link.FavoriteID = &req.FavoriteID
	}
	created, err := svc.client.CreateShareLink(ctx, link)
	if err != nil {
		return err
	}
	out := opts.stdout()
	fmt.Fprintln(out, created.ShareURL)
	if !created.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Expires %s\n", created.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

// Nutrition prints nutrition facts for one or more ingredients.
func Nutrition(ctx context.Context, opts Options, ingredients []string) error {
	var names []string
	for _, name := range ingredients {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return errors.New("nutrition needs at least one ingredient")
	}

	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	if err := svc.requireFeature(tier.BasicNutrition); err != nil {
		return err
	}

	var items []kitchen.NutritionFacts
	if len(names) == 1 {
		facts, err := svc.client.LookupNutrition(ctx, names[0])
		if err != nil {
			return err
		}
		items = append(items, *facts)
	} else {
		bulk, err := svc.client.BulkNutrition(ctx, names)
		if err != nil {
			return err
		}
		items = bulk.Items
	}

	out := opts.stdout()
	for _, f := range items {
		fmt.Fprintf(out, "%-20s %6.0f kcal  P %5.1f g  C %5.1f g  F %5.1f g",
			f.Name, f.Calories, f.Protein, f.Carbs, f.Fat)
		if f.Per != "" {
			fmt.Fprintf(out, "  per %s", f.Per)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
