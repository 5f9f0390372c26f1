package app

import "github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"

// Options groups the distinct filter values offered to shoppers.
type Options struct {
	Origins   []string `json:"origins"`
	Badges    []string `json:"badges"`
	Marinades []string `json:"marinades"`
	Cuts      []string `json:"cuts"`
	Weights   []string `json:"weights"`
}

func (s *Service) Options() Options {
	return Options{
		Origins:   s.Origins(),
		Badges:    s.Badges(),
		Marinades: s.Marinades(),
		Cuts:      s.Cuts(),
		Weights:   s.Weights(),
	}
}

func (s *Service) Origins() []string {
	var set orderedSet
	for _, p := range s.products {
		set.add(p.Origin)
	}
	return set.values()
}

func (s *Service) Badges() []string {
	var set orderedSet
	for _, p := range s.products {
		for _, b := range p.Badges {
			set.add(b)
		}
	}
	return set.values()
}

// Cuts skips variants without a cut.
func (s *Service) Cuts() []string {
	var set orderedSet
	for _, p := range s.products {
		for _, v := range p.Variants {
			if v.Cut != nil {
				set.add(*v.Cut)
			}
		}
	}
	return set.values()
}

func (s *Service) Weights() []string {
	var set orderedSet
	for _, p := range s.products {
		for _, v := range p.Variants {
			set.add(v.Weight)
		}
	}
	return set.values()
}

// Marinades skips the "None" sentinel.
func (s *Service) Marinades() []string {
	var set orderedSet
	for _, p := range s.products {
		for _, v := range p.Variants {
			if m := v.MarinadeOrDefault(); m != domain.NoMarinade {
				set.add(m)
			}
		}
	}
	return set.values()
}

type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func (o *orderedSet) add(v string) {
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	if _, ok := o.seen[v]; ok {
		return
	}
	o.seen[v] = struct{}{}
	o.order = append(o.order, v)
}

func (o *orderedSet) values() []string {
	if o.order == nil {
		return []string{}
	}
	return o.order
}

type Stats struct {
	TotalProducts       int     `json:"total_products"`
	TotalCategories     int     `json:"total_categories"`
	TotalVariants       int     `json:"total_variants"`
	FeaturedProducts    int     `json:"featured_products"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	AveragePrice        float64 `json:"average_price"`
	ProductsInStock     int     `json:"products_in_stock"`
	LowStockProducts    int     `json:"low_stock_products"`
}

// Stats summarises the whole catalog. The mean price is undefined for an empty
// catalog, which is reported as ErrEmptyCatalog.
func (s *Service) Stats() (Stats, error) {
	if len(s.products) == 0 {
		return Stats{}, ErrEmptyCatalog
	}

	st := Stats{
		TotalProducts:       len(s.products),
		TotalCategories:     len(s.categories),
		FeaturedProducts:    len(s.FeaturedProducts()),
		TotalInventoryValue: s.InventoryValue(),
	}

	var priceSum float64
	for _, p := range s.products {
		st.TotalVariants += len(p.Variants)
		priceSum += p.PricePerKg
		if p.InStock() {
			st.ProductsInStock++
		}
		if p.LowStock() {
			st.LowStockProducts++
		}
	}
	st.AveragePrice = priceSum / float64(len(s.products))

	return st, nil
}

func (s *Service) InventoryValue() float64 {
	var total float64
	for _, p := range s.products {
		total += p.InventoryValue()
	}
	return total
}
