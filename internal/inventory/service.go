package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/state"
)

// API is the part of the endpoint facade the service uses.
type API interface {
	Ingredients(ctx context.Context, filter kitchen.IngredientFilter) ([]kitchen.Ingredient, error)
	CreateIngredient(ctx context.Context, in kitchen.IngredientInput) (*kitchen.Ingredient, error)
	UpdateIngredient(ctx context.Context, id int64, patch kitchen.IngredientPatch) (*kitchen.Ingredient, error)
	DeleteIngredient(ctx context.Context, id int64) error
	ScanBarcode(ctx context.Context, barcode string) (*kitchen.Product, error)
}

// ErrNameRequired is returned when an ingredient name is blank.
var ErrNameRequired = errors.New("ingredient name is required")

// Service applies pantry changes and keeps the shared store current.
type Service struct {
	api    API
	store  *state.Store
	logger *slog.Logger
}

// NewService builds a Service.
func NewService(api API, store *state.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{api: api, store: store, logger: logger}
}

// Reload fetches the whole pantry into the store.
func (s *Service) Reload(ctx context.Context) error {
	items, err := s.api.Ingredients(ctx, kitchen.IngredientFilter{})
	s.store.UpdateIngredients(items, err)
	return err
}

// Add creates an ingredient. A duplicate name yields a *Conflict.
func (s *Service) Add(ctx context.Context, in kitchen.IngredientInput) (*kitchen.Ingredient, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		in.Category = nil
	}

	item, err := s.api.CreateIngredient(ctx, in)
	if err != nil {
		if conflict, ok := ResolveConflict(err, in.Name, s.store.Snapshot()); ok {
			s.logger.InfoContext(ctx, "duplicate ingredient",
				slog.String("name", in.Name),
				slog.Int64("existing_id", conflict.ExistingID),
			)
			return nil, conflict
		}
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.WarnContext(ctx, "reload after add failed", slog.String("error", err.Error()))
	}
	return item, nil
}

// Update patches an ingredient and reloads the pantry.
func (s *Service) Update(ctx context.Context, id int64, patch kitchen.IngredientPatch) (*kitchen.Ingredient, error) {
	item, err := s.api.UpdateIngredient(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.WarnContext(ctx, "reload after update failed", slog.String("error", err.Error()))
	}
	return item, nil
}

// Remove deletes an ingredient and reloads the pantry.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.WarnContext(ctx, "reload after delete failed", slog.String("error", err.Error()))
	}
	return nil
}

// Scan validates a barcode and looks the product up.
func (s *Service) Scan(ctx context.Context, raw string) (*kitchen.Product, error) {
	code, err := NormalizeBarcode(raw)
	if err != nil {
		return nil, err
	}
	product, err := s.api.ScanBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !product.Found {
		return product, ErrProductNotFound
	}
	return product, nil
}

// AddProduct adds a scanned product under its localized name.
func (s *Service) AddProduct(ctx context.Context, product kitchen.Product, lang string, expiry *time.Time) (*kitchen.Ingredient, error) {
	name := strings.TrimSpace(product.LocalizedName(lang))
	if name == "" {
		name = product.Barcode
	}
	return s.Add(ctx, kitchen.IngredientInput{Name: name, ExpiryDate: expiry})
}
