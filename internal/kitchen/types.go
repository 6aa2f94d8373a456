package kitchen

import (
	"encoding/json"
	"time"
)

// Token mirrors the /auth/login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated user's profile; it is also the User Snapshot.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Emoji            string    `json:"emoji,omitempty"`
	SubscriptionTier string    `json:"subscription_tier"`
	DailyRecipeCount int       `json:"daily_recipe_count"`
	DailyLimit       int       `json:"daily_limit"`
	IsAdmin          bool      `json:"is_admin,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserUpdate is a partial update of /users/me; nil fields are not sent.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Emoji    *string `json:"emoji,omitempty"`
}

// Ingredient is one pantry item.
type Ingredient struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Category    *string    `json:"category"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	IsPermanent bool       `json:"is_permanent"`
	AddedAt     time.Time  `json:"added_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// CategoryName returns the category or "".
func (i Ingredient) CategoryName() string {
	if i.Category == nil {
		return ""
	}
	return *i.Category
}

// Expired reports whether the ingredient expired before now.
func (i Ingredient) Expired(now time.Time) bool {
	return i.ExpiryDate != nil && i.ExpiryDate.Before(now)
}

// IngredientInput creates an ingredient. Absent category and expiry are
// sent as JSON null.
type IngredientInput struct {
	Name        string     `json:"name"`
	Category    *string    `json:"category"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	IsPermanent bool       `json:"is_permanent"`
}

// IngredientPatch updates an ingredient; nil fields are not sent.
type IngredientPatch struct {
	Name        *string    `json:"name,omitempty"`
	Category    *string    `json:"category,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	IsPermanent *bool      `json:"is_permanent,omitempty"`
}

// IngredientFilter narrows GET /ingredients/. Zero values are omitted.
type IngredientFilter struct {
	Category string
	Expired  *bool
}

// RecipeRequest asks the backend to generate recipes.
type RecipeRequest struct {
	IngredientIDs []int64  `json:"ingredient_ids"`
	AIProvider    string   `json:"ai_provider,omitempty"`
	DietProfiles  []string `json:"diet_profiles"`
	DiabetesUnit  string   `json:"diabetes_unit,omitempty"`
	Servings      int      `json:"servings,omitempty"`
	Language      string   `json:"language,omitempty"`
}

// RecipeIngredient is one line of a recipe's ingredient list.
type RecipeIngredient struct {
	Name   string   `json:"name"`
	Amount string   `json:"amount"`
	Carbs  *float64 `json:"carbs,omitempty"`
}

// Nutrition holds per-serving values.
type Nutrition struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	KE       *float64 `json:"ke,omitempty"`
	BE       *float64 `json:"be,omitempty"`
}

// Recipe is a generated recipe.
type Recipe struct {
	ID                  int64              `json:"id"`
	UserID              int64              `json:"user_id"`
	Name                string             `json:"name"`
	Description         string             `json:"description"`
	Difficulty          int                `json:"difficulty"`
	CookingTime         string             `json:"cooking_time"`
	Method              string             `json:"method"`
	Servings            int                `json:"servings"`
	UsedIngredients     []string           `json:"used_ingredients"`
	LeftoverTips        string             `json:"leftover_tips"`
	Ingredients         []RecipeIngredient `json:"ingredients"`
	NutritionPerServing *Nutrition         `json:"nutrition_per_serving"`
	AIProvider          string             `json:"ai_provider"`
	GeneratedAt         time.Time          `json:"generated_at"`
}

// RecipeList is the /recipes/generate response.
type RecipeList struct {
	Recipes             []Recipe `json:"recipes"`
	Count               int      `json:"count"`
	DailyCountRemaining int      `json:"daily_count_remaining"`
	Message             string   `json:"message"`
}

// PageRequest selects a slice of a paginated list.
type PageRequest struct {
	Limit  int
	Offset int
}

// Favorite links a recipe to the user.
type Favorite struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	RecipeID int64     `json:"recipe_id"`
	AddedAt  time.Time `json:"added_at"`
	Recipe   *Recipe   `json:"recipe"`
}

// FavoriteList is the /favorites/ response.
type FavoriteList struct {
	Favorites []Favorite `json:"favorites"`
	Count     int        `json:"count"`
}

// UnmarshalJSON accepts both {"favorites": [...]} and a bare array.
func (l *FavoriteList) UnmarshalJSON(data []byte) error {
	var items []Favorite
	if err := json.Unmarshal(data, &items); err == nil {
		l.Favorites = items
		l.Count = len(items)
		return nil
	}
	type alias FavoriteList
	var wrapped alias
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = FavoriteList(wrapped)
	return nil
}

// FavoriteCheck is the /favorites/check/{id} response.
type FavoriteCheck struct {
	IsFavorite bool   `json:"is_favorite"`
	FavoriteID *int64 `json:"favorite_id"`
}

// DietProfile is a diet constraint applied to recipe generation.
type DietProfile struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	ProfileType string         `json:"profile_type"`
	Name        string         `json:"name"`
	Settings    map[string]any `json:"settings"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at"`
}

// DietProfileList is the /profiles/ response.
type DietProfileList struct {
	Profiles    []DietProfile `json:"profiles"`
	Count       int           `json:"count"`
	ActiveCount int           `json:"active_count"`
}

// DietProfileInput creates a profile.
type DietProfileInput struct {
	ProfileType string         `json:"profile_type"`
	Name        string         `json:"name"`
	Settings    map[string]any `json:"settings"`
	IsActive    bool           `json:"is_active"`
}

// DietProfilePatch updates a profile; nil fields are not sent.
type DietProfilePatch struct {
	Name     *string        `json:"name,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	IsActive *bool          `json:"is_active,omitempty"`
}

// ShoppingListRequest selects recipes and favorites to shop for.
type ShoppingListRequest struct {
	RecipeIDs   []int64 `json:"recipe_ids"`
	FavoriteIDs []int64 `json:"favorite_ids"`
	ScaleFactor float64 `json:"scale_factor"`
}

// ShoppingListItem is one line on a shopping list.
type ShoppingListItem struct {
	Name     string  `json:"name"`
	Amount   string  `json:"amount"`
	Category *string `json:"category"`
	Checked  bool    `json:"checked"`
}

// ShoppingList is the /shopping-list/generate response.
type ShoppingList struct {
	Items           []ShoppingListItem `json:"items"`
	TotalItems      int                `json:"total_items"`
	RecipesIncluded []string           `json:"recipes_included"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ShareLinkRequest creates a public link to a recipe or favorite.
type ShareLinkRequest struct {
	RecipeID     *int64 `json:"recipe_id"`
	FavoriteID   *int64 `json:"favorite_id"`
	ExpiresHours int    `json:"expires_hours"`
}

// ShareLink describes a created or listed share link.
type ShareLink struct {
	ShareID    string    `json:"share_id"`
	ShareURL   string    `json:"share_url"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	RecipeName string    `json:"recipe_name"`
}

// ShareLinkList is the /share/my/links response.
type ShareLinkList struct {
	Links []ShareLink `json:"links"`
	Count int         `json:"count"`
}

// SharedRecipe is the public view of a shared recipe.
type SharedRecipe struct {
	Name                string             `json:"name"`
	Description         string             `json:"description"`
	Difficulty          int                `json:"difficulty"`
	CookingTime         string             `json:"cooking_time"`
	Method              string             `json:"method"`
	Servings            int                `json:"servings"`
	Ingredients         []RecipeIngredient `json:"ingredients"`
	NutritionPerServing map[string]any     `json:"nutrition_per_serving"`
	SharedBy            string             `json:"shared_by"`
	SharedAt            time.Time          `json:"shared_at"`
}

// NutritionFacts describes one ingredient per 100g.
type NutritionFacts struct {
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Per      string   `json:"per"`
	Source   string   `json:"source"`
	KE       *float64 `json:"ke,omitempty"`
	BE       *float64 `json:"be,omitempty"`
}

// BulkNutrition is the /nutrition/bulk response.
type BulkNutrition struct {
	Items         []NutritionFacts `json:"items"`
	TotalCalories float64          `json:"total_calories"`
	TotalProtein  float64          `json:"total_protein"`
	TotalCarbs    float64          `json:"total_carbs"`
	TotalFat      float64          `json:"total_fat"`
	TotalKE       float64          `json:"total_ke"`
	TotalBE       float64          `json:"total_be"`
}

// Product is the barcode scanner result.
type Product struct {
	Barcode           string `json:"barcode"`
	ProductName       string `json:"product_name"`
	ProductNameDE     string `json:"product_name_de"`
	ProductNameEN     string `json:"product_name_en"`
	Brands            string `json:"brands"`
	Categories        string `json:"categories"`
	IngredientsText   string `json:"ingredients_text"`
	IngredientsTextDE string `json:"ingredients_text_de"`
	IngredientsTextEN string `json:"ingredients_text_en"`
	Allergens         string `json:"allergens"`
	ImageURL          string `json:"image_url"`
	NutriscoreGrade   string `json:"nutriscore_grade"`
	NovaGroup         *int   `json:"nova_group"`
	Found             bool   `json:"found"`
}

// LocalizedName picks the product name for lang, then the generic name.
func (p Product) LocalizedName(lang string) string {
	switch lang {
	case "de":
		if p.ProductNameDE != "" {
			return p.ProductNameDE
		}
	case "en":
		if p.ProductNameEN != "" {
			return p.ProductNameEN
		}
	}
	return p.ProductName
}
