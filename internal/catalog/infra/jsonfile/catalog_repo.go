package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dwikikusuma/rajah-storefront/data"
	"github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
)

// CatalogRepo serves a catalog document decoded once from JSON.
type CatalogRepo struct {
	doc domain.Document
}

// Open reads the document at path. An empty path falls back to the bundled catalog.
func Open(path string) (*CatalogRepo, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func Default() (*CatalogRepo, error) {
	return Parse(bytes.NewReader(data.Products))
}

func Parse(r io.Reader) (*CatalogRepo, error) {
	var doc domain.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range doc.Products {
		normalize(&doc.Products[i])
	}

	return &CatalogRepo{doc: doc}, nil
}

func (r *CatalogRepo) Document() domain.Document {
	return r.doc
}

// normalize fills defaults the document is allowed to omit.
func normalize(p *domain.Product) {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.CookingTips == nil {
		p.CookingTips = []string{}
	}
	if p.Variants == nil {
		p.Variants = []domain.Variant{}
	}
	for i := range p.Variants {
		if p.Variants[i].Marinade == "" {
			p.Variants[i].Marinade = domain.NoMarinade
		}
		if p.Variants[i].Stock < 0 {
			p.Variants[i].Stock = 0
		}
	}
}
