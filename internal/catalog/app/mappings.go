package app

import (
	"slices"
	"sort"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
)

// DerivedMappings rebuilds the product-id index from the active products.
func (s *Service) DerivedMappings() domain.Mappings {
	m := domain.Mappings{
		ByCategory:   map[string][]string{},
		ByFeatured:   map[string][]string{"featured": {}},
		ByPriceRange: map[string][]string{},
		ByOrigin:     map[string][]string{},
		ByBadges:     map[string][]string{},
	}
	for _, b := range domain.PriceBands {
		m.ByPriceRange[string(b)] = []string{}
	}

	for _, p := range s.products {
		if !p.Active {
			continue
		}
		m.ByCategory[p.Category] = append(m.ByCategory[p.Category], p.ID)
		if p.Featured {
			m.ByFeatured["featured"] = append(m.ByFeatured["featured"], p.ID)
		}
		band := string(domain.BandFor(p.PricePerKg))
		m.ByPriceRange[band] = append(m.ByPriceRange[band], p.ID)
		m.ByOrigin[p.Origin] = append(m.ByOrigin[p.Origin], p.ID)
		for _, b := range p.Badges {
			m.ByBadges[b] = append(m.ByBadges[b], p.ID)
		}
	}
	return m
}

// Drift is one index entry whose ids differ between the document and the derived index.
type Drift struct {
	Index    string   `json:"index"`
	Key      string   `json:"key"`
	Document []string `json:"document"`
	Derived  []string `json:"derived"`
}

// MappingDrift compares the document's mappings with DerivedMappings. Order within an
// entry is ignored. A document without mappings has no drift.
func (s *Service) MappingDrift() []Drift {
	if s.mappings == nil {
		return nil
	}
	derived := s.DerivedMappings()

	var out []Drift
	out = append(out, diffIndex("by_category", s.mappings.ByCategory, derived.ByCategory)...)
	out = append(out, diffIndex("by_featured", s.mappings.ByFeatured, derived.ByFeatured)...)
	out = append(out, diffIndex("by_price_range", s.mappings.ByPriceRange, derived.ByPriceRange)...)
	out = append(out, diffIndex("by_origin", s.mappings.ByOrigin, derived.ByOrigin)...)
	out = append(out, diffIndex("by_badges", s.mappings.ByBadges, derived.ByBadges)...)
	return out
}

func diffIndex(name string, doc, derived map[string][]string) []Drift {
	keys := make([]string, 0, len(doc)+len(derived))
	for k := range doc {
		keys = append(keys, k)
	}
	for k := range derived {
		if _, ok := doc[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []Drift
	for _, k := range keys {
		if !sameIDs(doc[k], derived[k]) {
			out = append(out, Drift{Index: name, Key: k, Document: doc[k], Derived: derived[k]})
		}
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
