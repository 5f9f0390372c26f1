package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
	"github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
)

type CategoryCount struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Stored  int    `json:"stored"`
	Derived int    `json:"derived"`
}

type VariantRef struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Weight    string `json:"weight"`
	Stock     int    `json:"stock"`
}

type Invalid struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
}

// Report is the result of checking one catalog document.
type Report struct {
	Metadata      domain.Metadata       `json:"metadata"`
	Categories    []CategoryCount       `json:"categories"`
	Featured      []domain.Product      `json:"-"`
	FeaturedIDs   []string              `json:"featured"`
	ValidProducts int                   `json:"valid_products"`
	Invalid       []Invalid             `json:"invalid_products"`
	WithImages    int                   `json:"products_with_images"`
	TotalProducts int                   `json:"total_products"`
	TotalStock    int                   `json:"total_stock"`
	LowStock      []VariantRef          `json:"low_stock_variants"`
	ZeroWeight    []VariantRef          `json:"zero_weight_variants"`
	Drift         []app.Drift           `json:"mapping_drift"`
	Zones         []domain.DeliveryZone `json:"delivery_zones"`
}

// OK reports whether every product passed structural validation.
func (r Report) OK() bool {
	return len(r.Invalid) == 0
}

func check(repo app.CatalogRepo) Report {
	doc := repo.Document()
	svc := app.NewService(repo)

	r := Report{
		Metadata:      doc.Metadata,
		Featured:      svc.FeaturedProducts(),
		TotalProducts: len(doc.Products),
		Drift:         svc.MappingDrift(),
		Zones:         doc.DeliveryZones,
	}

	derived := make(map[string]int, len(doc.Categories))
	for _, c := range svc.AllCategories() {
		derived[c.Slug] = c.ProductCount
	}
	for _, c := range doc.Categories {
		r.Categories = append(r.Categories, CategoryCount{
			Slug:    c.Slug,
			Name:    c.Name,
			Stored:  c.ProductCount,
			Derived: derived[c.Slug],
		})
	}

	for _, p := range r.Featured {
		r.FeaturedIDs = append(r.FeaturedIDs, p.ID)
	}

	for _, p := range doc.Products {
		if reason := invalidReason(p); reason != "" {
			r.Invalid = append(r.Invalid, Invalid{ProductID: p.ID, Name: p.Name, Reason: reason})
		} else {
			r.ValidProducts++
		}
		if len(p.Images) > 0 {
			r.WithImages++
		}

		for _, v := range p.Variants {
			ref := VariantRef{ProductID: p.ID, VariantID: v.ID, Weight: v.Weight, Stock: v.Stock}
			r.TotalStock += v.Stock
			if v.Stock < domain.LowStockThreshold {
				r.LowStock = append(r.LowStock, ref)
			}
			if domain.WeightInKg(v.Weight) == 0 {
				r.ZeroWeight = append(r.ZeroWeight, ref)
			}
		}
	}

	return r
}

func invalidReason(p domain.Product) string {
	var missing []string
	if p.ID == "" {
		missing = append(missing, "id")
	}
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Slug == "" {
		missing = append(missing, "slug")
	}
	if p.PricePerKg <= 0 {
		missing = append(missing, "price_per_kg")
	}
	if len(missing) > 0 {
		return "missing " + strings.Join(missing, ", ")
	}
	if len(p.Variants) == 0 {
		return "no variants"
	}
	return ""
}

func (r Report) WriteText(w io.Writer) {
	fmt.Fprintln(w, "Metadata")
	fmt.Fprintf(w, "  version %s, %d categories, %d products, %d variants\n",
		r.Metadata.Version, r.Metadata.TotalCategories, r.Metadata.TotalProducts, r.Metadata.TotalVariants)

	fmt.Fprintln(w, "Categories (stored / derived)")
	for _, c := range r.Categories {
		mark := ""
		if c.Stored != c.Derived {
			mark = "  MISMATCH"
		}
		fmt.Fprintf(w, "  %-10s %d / %d%s\n", c.Slug, c.Stored, c.Derived, mark)
	}

	fmt.Fprintln(w, "Featured")
	for _, p := range r.Featured {
		fmt.Fprintf(w, "  %s: £%.2f/kg (%d variants)\n", p.Name, p.PricePerKg, len(p.Variants))
	}

	fmt.Fprintln(w, "Delivery zones")
	for _, z := range r.Zones {
		fmt.Fprintf(w, "  %s (%s): £%.2f delivery, min £%.2f\n", z.PostcodePrefix, z.ZoneName, z.DeliveryFee, z.MinimumOrder)
	}

	fmt.Fprintln(w, "Structure")
	fmt.Fprintf(w, "  valid %d, invalid %d\n", r.ValidProducts, len(r.Invalid))
	for _, p := range r.Invalid {
		fmt.Fprintf(w, "  invalid %s (%s): %s\n", p.ProductID, p.Name, p.Reason)
	}
	fmt.Fprintf(w, "  with images %d/%d\n", r.WithImages, r.TotalProducts)

	fmt.Fprintln(w, "Stock")
	fmt.Fprintf(w, "  total units %d\n", r.TotalStock)
	fmt.Fprintf(w, "  low stock variants (< %d): %d\n", domain.LowStockThreshold, len(r.LowStock))
	for _, v := range r.ZeroWeight {
		fmt.Fprintf(w, "  unparseable weight %s/%s %q\n", v.ProductID, v.VariantID, v.Weight)
	}

	fmt.Fprintln(w, "Mappings")
	if len(r.Drift) == 0 {
		fmt.Fprintln(w, "  in sync")
	}
	for _, d := range r.Drift {
		fmt.Fprintf(w, "  %s[%s]: document %v, derived %v\n", d.Index, d.Key, d.Document, d.Derived)
	}
}
