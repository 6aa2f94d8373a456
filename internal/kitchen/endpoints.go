package kitchen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPageLimit    = 20
	defaultShareExpires = 168
)

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, email, username, password string) (*User, error) {
	var user User
	body := map[string]string{"email": email, "username": username, "password": password}
	if err := c.Post(ctx, "/auth/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token. It does not store the token.
func (c *Client) Login(ctx context.Context, emailOrUsername, password string) (*Token, error) {
	var token Token
	body := map[string]string{"email_or_username": emailOrUsername, "password": password}
	if err := c.Post(ctx, "/auth/login", body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Logout invalidates server-side session state.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/auth/logout", struct{}{}, nil)
}

// SendVerificationEmail asks the backend to mail a verification link.
func (c *Client) SendVerificationEmail(ctx context.Context, email string) error {
	return c.Post(ctx, "/email/send-verification", map[string]string{"email": email}, nil)
}

// Me fetches the current user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe applies a partial update to the current user.
func (c *Client) UpdateMe(ctx context.Context, update UserUpdate) (*User, error) {
	var user User
	if err := c.Patch(ctx, "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteMe deletes the current account.
func (c *Client) DeleteMe(ctx context.Context) error {
	return c.Delete(ctx, "/users/me", nil)
}

// Ingredients lists the pantry; only supplied filters are encoded.
func (c *Client) Ingredients(ctx context.Context, filter IngredientFilter) ([]Ingredient, error) {
	values := url.Values{}
	if category := strings.TrimSpace(filter.Category); category != "" {
		values.Set("category", category)
	}
	if filter.Expired != nil {
		values.Set("expired", strconv.FormatBool(*filter.Expired))
	}
	var items []Ingredient
	if err := c.Get(ctx, withQuery("/ingredients/", values), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateIngredient adds one ingredient.
func (c *Client) CreateIngredient(ctx context.Context, in IngredientInput) (*Ingredient, error) {
	var item Ingredient
	if err := c.Post(ctx, "/ingredients/", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateIngredient patches one ingredient.
func (c *Client) UpdateIngredient(ctx context.Context, id int64, patch IngredientPatch) (*Ingredient, error) {
	var item Ingredient
	if err := c.Patch(ctx, fmt.Sprintf("/ingredients/%d", id), patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteIngredient removes one ingredient.
func (c *Client) DeleteIngredient(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/ingredients/%d", id), nil)
}

// CreateIngredientsBatch adds several ingredients in one call.
func (c *Client) CreateIngredientsBatch(ctx context.Context, items []IngredientInput) ([]Ingredient, error) {
	var created []Ingredient
	if err := c.Post(ctx, "/ingredients/batch", map[string]any{"ingredients": items}, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// GenerateRecipes asks the backend for recipes from the given ingredients.
func (c *Client) GenerateRecipes(ctx context.Context, req RecipeRequest) (*RecipeList, error) {
	if req.DietProfiles == nil {
		req.DietProfiles = []string{}
	}
	var list RecipeList
	if err := c.Post(ctx, "/recipes/generate", req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RecipeHistory lists previously generated recipes, 20 per page by default.
func (c *Client) RecipeHistory(ctx context.Context, page PageRequest) ([]Recipe, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	path := fmt.Sprintf("/recipes/history?limit=%d&offset=%d", limit, offset)
	var recipes []Recipe
	if err := c.Get(ctx, path, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Recipe fetches one recipe.
func (c *Client) Recipe(ctx context.Context, id int64) (*Recipe, error) {
	var recipe Recipe
	if err := c.Get(ctx, fmt.Sprintf("/recipes/%d", id), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// RecipePortions returns the recipe scaled to servings.
func (c *Client) RecipePortions(ctx context.Context, id int64, servings int) (*Recipe, error) {
	var recipe Recipe
	if err := c.Get(ctx, fmt.Sprintf("/recipes/%d/portions?servings=%d", id, servings), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ExportRecipePDF downloads a recipe as PDF.
func (c *Client) ExportRecipePDF(ctx context.Context, id int64) ([]byte, error) {
	return c.Download(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d/export/pdf", id), nil)
}

// Favorites lists the user's favorites.
func (c *Client) Favorites(ctx context.Context) (*FavoriteList, error) {
	var list FavoriteList
	if err := c.Get(ctx, "/favorites/", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddFavorite favorites a recipe.
func (c *Client) AddFavorite(ctx context.Context, recipeID int64) (*Favorite, error) {
	var fav Favorite
	if err := c.Post(ctx, "/favorites/", map[string]int64{"recipe_id": recipeID}, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

// RemoveFavorite deletes a favorite by its own id.
func (c *Client) RemoveFavorite(ctx context.Context, favoriteID int64) error {
	return c.Delete(ctx, fmt.Sprintf("/favorites/%d", favoriteID), nil)
}

// CheckFavorite reports whether a recipe is favorited.
func (c *Client) CheckFavorite(ctx context.Context, recipeID int64) (*FavoriteCheck, error) {
	var check FavoriteCheck
	if err := c.Get(ctx, fmt.Sprintf("/favorites/check/%d", recipeID), &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// Profiles lists diet profiles, optionally only active or inactive ones.
func (c *Client) Profiles(ctx context.Context, active *bool) (*DietProfileList, error) {
	values := url.Values{}
	if active != nil {
		values.Set("active", strconv.FormatBool(*active))
	}
	var list DietProfileList
	if err := c.Get(ctx, withQuery("/profiles/", values), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ProfileTemplates returns the backend's profile templates keyed by type.
func (c *Client) ProfileTemplates(ctx context.Context) (map[string]any, error) {
	var templates map[string]any
	if err := c.Get(ctx, "/profiles/templates", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateProfile creates a custom diet profile.
func (c *Client) CreateProfile(ctx context.Context, in DietProfileInput) (*DietProfile, error) {
	if in.Settings == nil {
		in.Settings = map[string]any{}
	}
	var profile DietProfile
	if err := c.Post(ctx, "/profiles/", in, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfileFromTemplate creates a profile from a backend template.
func (c *Client) CreateProfileFromTemplate(ctx context.Context, profileType string) (*DietProfile, error) {
	var profile DietProfile
	path := "/profiles/templates/" + url.PathEscape(profileType)
	if err := c.Post(ctx, path, struct{}{}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateDietProfile patches a diet profile.
func (c *Client) UpdateDietProfile(ctx context.Context, id int64, patch DietProfilePatch) (*DietProfile, error) {
	var profile DietProfile
	if err := c.Patch(ctx, fmt.Sprintf("/profiles/%d", id), patch, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile removes a diet profile.
func (c *Client) DeleteProfile(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/profiles/%d", id), nil)
}

// GenerateShoppingList builds a shopping list from recipes and favorites.
func (c *Client) GenerateShoppingList(ctx context.Context, req ShoppingListRequest) (*ShoppingList, error) {
	req = normalizeShoppingRequest(req)
	var list ShoppingList
	if err := c.Post(ctx, "/shopping-list/generate", req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ExportShoppingListText downloads the shopping list as plain text.
func (c *Client) ExportShoppingListText(ctx context.Context, req ShoppingListRequest) ([]byte, error) {
	return c.Download(ctx, http.MethodPost, "/shopping-list/export/text", normalizeShoppingRequest(req))
}

// ExportShoppingListJSON downloads the shopping list as a JSON file.
func (c *Client) ExportShoppingListJSON(ctx context.Context, req ShoppingListRequest) ([]byte, error) {
	return c.Download(ctx, http.MethodPost, "/shopping-list/export/json", normalizeShoppingRequest(req))
}

// CreateShareLink creates a public link; links expire after 168 hours by default.
func (c *Client) CreateShareLink(ctx context.Context, req ShareLinkRequest) (*ShareLink, error) {
	if req.ExpiresHours <= 0 {
		req.ExpiresHours = defaultShareExpires
	}
	var link ShareLink
	if err := c.Post(ctx, "/share/create", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// SharedRecipe fetches a shared recipe by share id.
func (c *Client) SharedRecipe(ctx context.Context, shareID string) (*SharedRecipe, error) {
	var recipe SharedRecipe
	if err := c.Get(ctx, "/share/"+url.PathEscape(shareID), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// RevokeShareLink deletes a share link.
func (c *Client) RevokeShareLink(ctx context.Context, shareID string) error {
	return c.Delete(ctx, "/share/"+url.PathEscape(shareID), nil)
}

// MyShareLinks lists the user's active share links.
func (c *Client) MyShareLinks(ctx context.Context) (*ShareLinkList, error) {
	var list ShareLinkList
	if err := c.Get(ctx, "/share/my/links", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// LookupNutrition returns nutrition facts for one ingredient.
func (c *Client) LookupNutrition(ctx context.Context, ingredient string) (*NutritionFacts, error) {
	values := url.Values{}
	values.Set("ingredient", ingredient)
	var facts NutritionFacts
	if err := c.Get(ctx, withQuery("/nutrition/lookup", values), &facts); err != nil {
		return nil, err
	}
	return &facts, nil
}

// BulkNutrition returns nutrition facts for several ingredients.
func (c *Client) BulkNutrition(ctx context.Context, ingredients []string) (*BulkNutrition, error) {
	var bulk BulkNutrition
	if err := c.Post(ctx, "/nutrition/bulk", map[string][]string{"ingredients": ingredients}, &bulk); err != nil {
		return nil, err
	}
	return &bulk, nil
}

// MealNutrition estimates nutrition for a comma-separated ingredient string.
func (c *Client) MealNutrition(ctx context.Context, ingredients string, servings int) (map[string]any, error) {
	if servings <= 0 {
		servings = 1
	}
	values := url.Values{}
	values.Set("ingredients", ingredients)
	values.Set("servings", strconv.Itoa(servings))
	var out map[string]any
	if err := c.Get(ctx, withQuery("/nutrition/calculate-meal", values), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScanBarcode looks up a product by EAN/UPC code.
func (c *Client) ScanBarcode(ctx context.Context, barcode string) (*Product, error) {
	var product Product
	if err := c.Get(ctx, "/scanner/barcode/"+url.PathEscape(barcode), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func normalizeShoppingRequest(req ShoppingListRequest) ShoppingListRequest {
	if req.RecipeIDs == nil {
		req.RecipeIDs = []int64{}
	}
	if req.FavoriteIDs == nil {
		req.FavoriteIDs = []int64{}
	}
	if req.ScaleFactor == 0 {
		req.ScaleFactor = 1.0
	}
	return req
}
