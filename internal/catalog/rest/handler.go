package rest

import (
	"net/http"
	"strconv"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
	"github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

var rules = []httpx.Rule{
	httpx.InvalidInput(app.ErrInvalidInput),
	httpx.NotFound(app.ErrNotFound),
	httpx.NotFound(app.ErrEmptyCatalog),
}

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:slug", h.GetCategory)

	r.GET("/products", h.ListProducts)
	r.GET("/products/search", h.Search)
	r.GET("/products/featured", h.Featured)
	r.GET("/products/random", h.Random)
	r.GET("/products/:slug", h.GetProduct)

	r.GET("/catalog/options", h.Options)
	r.GET("/catalog/stats", h.Stats)
	r.GET("/delivery-zones", h.DeliveryZones)
	r.GET("/site-settings", h.SiteSettings)
}

func list[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) ListCategories(c *gin.Context) {
	if c.Query("sort") == "display_order" {
		list(c, h.svc.CategoriesByDisplayOrder())
		return
	}
	list(c, h.svc.AllCategories())
}

func (h *Handler) GetCategory(c *gin.Context) {
	cat, ok := h.svc.CategoryBySlug(c.Param("slug"))
	if !ok {
		httpx.Abort(c, app.ErrNotFound, rules...)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": cat,
		"products": h.svc.ProductsByCategory(cat.Slug),
	})
}

// parseFilters reads the product list query. A bad price band or boolean is ErrInvalidInput.
func parseFilters(c *gin.Context) (app.Filters, error) {
	f := app.Filters{
		Category: c.Query("category"),
		Origin:   c.Query("origin"),
		Badge:    c.Query("badge"),
		Search:   c.Query("q"),
	}

	if v := c.Query("price_band"); v != "" {
		band, err := domain.ParsePriceBand(v)
		if err != nil {
			return app.Filters{}, app.ErrInvalidInput
		}
		f.PriceBand = band
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return app.Filters{}, app.ErrInvalidInput
		}
		f.Featured = &b
	}
	if v := c.Query("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return app.Filters{}, app.ErrInvalidInput
		}
		f.InStock = b
	}
	return f, nil
}

func (h *Handler) ListProducts(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	list(c, h.svc.Filter(f))
}

func (h *Handler) Search(c *gin.Context) {
	list(c, h.svc.Search(c.Query("q")))
}

func (h *Handler) Featured(c *gin.Context) {
	list(c, h.svc.FeaturedProducts())
}

func (h *Handler) Random(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "4"))
	if err != nil || n < 0 {
		httpx.Abort(c, app.ErrInvalidInput, rules...)
		return
	}
	list(c, h.svc.RandomProducts(n))
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, ok := h.svc.ProductBySlug(c.Param("slug"))
	if !ok {
		httpx.Abort(c, app.ErrNotFound, rules...)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Options())
}

func (h *Handler) Stats(c *gin.Context) {
	st, err := h.svc.Stats()
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) DeliveryZones(c *gin.Context) {
	list(c, h.svc.DeliveryZones())
}

func (h *Handler) SiteSettings(c *gin.Context) {
	settings := h.svc.SiteSettings()
	if settings == nil {
		settings = map[string]any{}
	}
	c.JSON(http.StatusOK, settings)
}
