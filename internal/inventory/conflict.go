// Package inventory wraps pantry mutations with duplicate detection and the
// barcode scanner flow.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/state"
)

// Conflict reports that an ingredient with the same name already exists.
type Conflict struct {
	Name string
	// ExistingID is zero when the existing ingredient could not be identified.
	ExistingID int64
	Err        error
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("%q already exists", c.Name)
}

func (c *Conflict) Unwrap() error { return c.Err }

// IsDuplicate reports whether err is the backend's duplicate-ingredient answer.
func IsDuplicate(err error) bool {
	var apiErr *kitchen.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != kitchen.KindRequestFailed {
		return false
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "already exists") {
		return true
	}
	return apiErr.Status == http.StatusConflict && existingID(apiErr.Detail) != 0
}

// ResolveConflict turns a duplicate error into a Conflict. The existing ID
// comes from the structured detail, else from a name match in snap.
func ResolveConflict(err error, name string, snap state.Snapshot) (*Conflict, bool) {
	if !IsDuplicate(err) {
		return nil, false
	}
	c := &Conflict{Name: strings.TrimSpace(name), Err: err}

	var apiErr *kitchen.Error
	if errors.As(err, &apiErr) {
		c.ExistingID = existingID(apiErr.Detail)
	}
	if c.ExistingID == 0 {
		if item, ok := snap.FindIngredient(name); ok {
			c.ExistingID = item.ID
		}
	}
	return c, true
}

func existingID(detail json.RawMessage) int64 {
	if len(detail) == 0 {
		return 0
	}
	var payload struct {
		ExistingID int64 `json:"existing_id"`
	}
	if err := json.Unmarshal(detail, &payload); err != nil {
		return 0
	}
	return payload.ExistingID
}
