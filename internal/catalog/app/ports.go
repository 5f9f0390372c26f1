package app

import "github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"

// CatalogRepo supplies the catalog document. The service reads it once at construction.
type CatalogRepo interface {
	Document() domain.Document
}
