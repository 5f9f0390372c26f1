package app

import (
	"strings"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
)

// Filters are ANDed together; zero values impose no constraint.
type Filters struct {
	Category  string
	PriceBand domain.PriceBand
	Origin    string
	Badge     string
	Featured  *bool
	InStock   bool

	// Search, when non-blank, replaces every other filter: the result is Search(Search)
	// and the remaining fields are ignored. Callers should not combine them.
	Search string
}

func (s *Service) Filter(f Filters) []domain.Product {
	if strings.TrimSpace(f.Search) != "" {
		return s.Search(f.Search)
	}

	var cat domain.Category
	if f.Category != "" {
		c, ok := s.CategoryBySlug(f.Category)
		if !ok {
			c = domain.Category{Slug: f.Category}
		}
		cat = c
	}

	return s.collectActive(func(p domain.Product) bool {
		if f.Category != "" && !inCategory(p, cat) {
			return false
		}
		if f.PriceBand != "" && domain.BandFor(p.PricePerKg) != f.PriceBand {
			return false
		}
		if f.Origin != "" && p.Origin != f.Origin {
			return false
		}
		if f.Badge != "" && !p.HasBadge(f.Badge) {
			return false
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			return false
		}
		if f.InStock && !p.InStock() {
			return false
		}
		return true
	})
}
