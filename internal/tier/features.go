package tier

// Feature is a gated capability.
type Feature int

const (
	BasicNutrition Feature = iota
	ShoppingLists
	ShareLinks
	// PDFExport covers every recipe; favorites export on any tier.
	PDFExport
)

// String names f for messages.
func (f Feature) String() string {
	switch f {
	case BasicNutrition:
		return "nutrition lookup"
	case ShoppingLists:
		return "shopping lists"
	case ShareLinks:
		return "share links"
	case PDFExport:
		return "PDF export"
	default:
		return "unknown feature"
	}
}

// Required returns the lowest tier that unlocks f.
func Required(f Feature) Tier {
	switch f {
	case ShoppingLists, ShareLinks, PDFExport:
		return Basic
	default:
		return Demo
	}
}

// Has reports whether t unlocks f. Admins have every feature.
func Has(t Tier, admin bool, f Feature) bool {
	if admin {
		return true
	}
	return t >= Required(f)
}
