// Package tier defines the subscription tiers and their entitlement limits.
package tier

import (
	"strconv"
	"strings"
)

// Tier is a closed enumeration of subscription tiers, lowest first.
type Tier int

const (
	Demo Tier = iota
	Basic
	Premium
)

// Parse maps a backend tier name to a Tier. Unknown or empty names are Demo.
func Parse(name string) Tier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic":
		return Basic
	case "premium":
		return Premium
	default:
		return Demo
	}
}

// String returns the backend name of the tier.
func (t Tier) String() string {
	switch t {
	case Basic:
		return "basic"
	case Premium:
		return "premium"
	default:
		return "demo"
	}
}

// Limit is an entitlement ceiling. The zero value means zero allowed.
type Limit struct {
	Max       int
	Unlimited bool
}

// Unlimited is the limit of the highest tier.
var Unlimited = Limit{Unlimited: true}

// Allows reports whether count items stay within the limit.
func (l Limit) Allows(count int) bool {
	return l.Unlimited || count <= l.Max
}

func (l Limit) String() string {
	if l.Unlimited {
		return "Unlimited"
	}
	return strconv.Itoa(l.Max)
}

// Descriptor carries the static limits of one tier.
type Descriptor struct {
	Tier      Tier
	Name      string
	Recipes   Limit
	Favorites Limit
	Profiles  Limit
}

// Describe returns the descriptor for t. Out-of-range values describe Demo.
func Describe(t Tier) Descriptor {
	switch t {
	case Basic:
		return Descriptor{Tier: Basic, Name: "Basic", Recipes: Limit{Max: 50}, Favorites: Limit{Max: 50}, Profiles: Limit{Max: 3}}
	case Premium:
		return Descriptor{Tier: Premium, Name: "Premium", Recipes: Unlimited, Favorites: Unlimited, Profiles: Unlimited}
	default:
		return Descriptor{Tier: Demo, Name: "Demo", Recipes: Limit{Max: 3}, Favorites: Limit{Max: 5}, Profiles: Limit{Max: 1}}
	}
}

// Lookup describes the tier with the given backend name.
func Lookup(name string) Descriptor {
	return Describe(Parse(name))
}
