package app

import (
	"errors"
	"maps"
	"math/rand"
	"sort"
	"strings"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrEmptyCatalog = errors.New("catalog has no products")
)

// Service answers read-only queries over an immutable catalog. Lists are returned in
// document order; filtering queries only consider active products. Every product handed
// out is a deep copy, so callers may modify what they receive.
type Service struct {
	products   []domain.Product
	categories []domain.Category
	zones      []domain.DeliveryZone
	settings   map[string]any
	metadata   domain.Metadata
	mappings   *domain.Mappings

	byID   map[string]int
	bySlug map[string]int
}

func NewService(repo CatalogRepo) *Service {
	doc := repo.Document()

	s := &Service{
		products:   doc.Products,
		categories: make([]domain.Category, len(doc.Categories)),
		zones:      doc.DeliveryZones,
		settings:   doc.SiteSettings,
		metadata:   doc.Metadata,
		mappings:   doc.Mappings,
		byID:       make(map[string]int, len(doc.Products)),
		bySlug:     make(map[string]int, len(doc.Products)),
	}

	for i, p := range s.products {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
		if _, dup := s.bySlug[p.Slug]; !dup {
			s.bySlug[p.Slug] = i
		}
	}

	copy(s.categories, doc.Categories)
	for i := range s.categories {
		s.categories[i].ProductCount = s.countActive(s.categories[i])
	}

	return s
}

func (s *Service) countActive(c domain.Category) int {
	n := 0
	for _, p := range s.products {
		if p.Active && inCategory(p, c) {
			n++
		}
	}
	return n
}

func inCategory(p domain.Product, c domain.Category) bool {
	return p.Category == c.Slug || (c.ID != "" && p.Category == c.ID)
}

func (s *Service) AllProducts() []domain.Product {
	return s.collect(func(domain.Product) bool { return true })
}

func (s *Service) AllCategories() []domain.Category {
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoriesByDisplayOrder sorts by display order, keeping document order for ties.
func (s *Service) CategoriesByDisplayOrder() []domain.Category {
	out := s.AllCategories()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

func (s *Service) CategoryBySlug(slug string) (domain.Category, bool) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (s *Service) ProductByID(id string) (domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i].Clone(), true
}

func (s *Service) ProductBySlug(slug string) (domain.Product, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i].Clone(), true
}

func (s *Service) Variants(productID string) []domain.Variant {
	p, ok := s.ProductByID(productID)
	if !ok || p.Variants == nil {
		return []domain.Variant{}
	}
	return p.Variants
}

func (s *Service) ProductsByCategory(slug string) []domain.Product {
	c, ok := s.CategoryBySlug(slug)
	if !ok {
		c = domain.Category{Slug: slug}
	}
	return s.collectActive(func(p domain.Product) bool { return inCategory(p, c) })
}

func (s *Service) FeaturedProducts() []domain.Product {
	return s.collectActive(func(p domain.Product) bool { return p.Featured })
}

func (s *Service) ProductsByPriceBand(band domain.PriceBand) []domain.Product {
	return s.collectActive(func(p domain.Product) bool { return domain.BandFor(p.PricePerKg) == band })
}

func (s *Service) ProductsByOrigin(origin string) []domain.Product {
	return s.collectActive(func(p domain.Product) bool { return p.Origin == origin })
}

func (s *Service) ProductsByBadge(badge string) []domain.Product {
	return s.collectActive(func(p domain.Product) bool { return p.HasBadge(badge) })
}

func (s *Service) ProductsInStock() []domain.Product {
	return s.collectActive(domain.Product.InStock)
}

func (s *Service) ProductsLowStock() []domain.Product {
	return s.collectActive(domain.Product.LowStock)
}

// ProductsWithVariant returns active products having a variant that matches every
// non-empty argument.
func (s *Service) ProductsWithVariant(weight, cut, marinade string) []domain.Product {
	return s.collectActive(func(p domain.Product) bool {
		for _, v := range p.Variants {
			if weight != "" && v.Weight != weight {
				continue
			}
			if cut != "" && (v.Cut == nil || *v.Cut != cut) {
				continue
			}
			if marinade != "" && v.MarinadeOrDefault() != marinade {
				continue
			}
			return true
		}
		return false
	})
}

// Search matches the query case-insensitively against name, description and badges.
// A blank query matches nothing.
func (s *Service) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}
	}
	return s.collectActive(func(p domain.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			return true
		}
		for _, b := range p.Badges {
			if strings.Contains(strings.ToLower(b), q) {
				return true
			}
		}
		return false
	})
}

// RandomProducts returns up to n active products in random order.
func (s *Service) RandomProducts(n int) []domain.Product {
	active := s.collectActive(func(domain.Product) bool { return true })
	if n <= 0 {
		return []domain.Product{}
	}
	rand.Shuffle(len(active), func(i, j int) { active[i], active[j] = active[j], active[i] })
	if n < len(active) {
		active = active[:n]
	}
	return active
}

func (s *Service) DeliveryZones() []domain.DeliveryZone {
	out := make([]domain.DeliveryZone, len(s.zones))
	copy(out, s.zones)
	return out
}

func (s *Service) SiteSettings() map[string]any {
	return maps.Clone(s.settings)
}

func (s *Service) Metadata() domain.Metadata {
	return s.metadata
}

// DocumentMappings returns the index shipped with the document, or nil.
func (s *Service) DocumentMappings() *domain.Mappings {
	return s.mappings
}

func (s *Service) collect(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s *Service) collectActive(keep func(domain.Product) bool) []domain.Product {
	return s.collect(func(p domain.Product) bool { return p.Active && keep(p) })
}
