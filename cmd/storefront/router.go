package main

import (
	"log/slog"
	"net/http"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/rajah-storefront/internal/cart/infra/adapter"
	cartkv "github.com/dwikikusuma/rajah-storefront/internal/cart/infra/kv"
	cartrest "github.com/dwikikusuma/rajah-storefront/internal/cart/rest"
	catalogapp "github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
	catalogrest "github.com/dwikikusuma/rajah-storefront/internal/catalog/rest"
	checkoutapp "github.com/dwikikusuma/rajah-storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/rajah-storefront/internal/checkout/infra/adapter"
	checkoutrest "github.com/dwikikusuma/rajah-storefront/internal/checkout/rest"
	identityapp "github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	identitykv "github.com/dwikikusuma/rajah-storefront/internal/identity/infra/kv"
	identityrest "github.com/dwikikusuma/rajah-storefront/internal/identity/rest"
	orderapp "github.com/dwikikusuma/rajah-storefront/internal/order/app"
	orderadapter "github.com/dwikikusuma/rajah-storefront/internal/order/infra/adapter"
	orderkv "github.com/dwikikusuma/rajah-storefront/internal/order/infra/kv"
	orderrest "github.com/dwikikusuma/rajah-storefront/internal/order/rest"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
	"github.com/gin-gonic/gin"
)

// deps are the outside resources the services are built on.
type deps struct {
	Log       *slog.Logger
	Store     kvstore.Store
	Catalog   catalogapp.CatalogRepo
	Accounts  identityapp.AccountStore
	Tokens    identityapp.TokenConfig
	Publisher orderapp.Publisher
}

type services struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	checkout *checkoutapp.Service
	identity *identityapp.Service
	order    *orderapp.Service
}

func wire(d deps) services {
	catalog := catalogapp.NewService(d.Catalog)
	cart := cartapp.NewService(cartkv.NewCartRepo(d.Store), cartadapter.NewCatalogServiceReader(catalog), d.Log)
	checkout := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cart),
		checkoutadapter.NewCatalogZoneReader(catalog),
		d.Log,
	)
	identity := identityapp.NewService(
		identityapp.NewBcryptVerifier(d.Accounts),
		identityapp.NewTokenManager(d.Tokens),
		identitykv.NewSessionStore(d.Store),
		cart,
		d.Log,
	)
	order := orderapp.NewService(
		orderkv.NewOrderRepo(d.Store),
		orderadapter.NewCartServiceCheckout(cart),
		orderadapter.NewCheckoutQuoter(checkout),
		d.Publisher,
		d.Log,
	)

	return services{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		identity: identity,
		order:    order,
	}
}

func newRouter(s services, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestLogger(log), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	catalogrest.NewHandler(s.catalog).Register(api)
	identityrest.NewHandler(s.identity).Register(api)

	private := api.Group("", identityrest.RequireUser(s.identity))
	cartrest.NewHandler(s.cart).Register(private)
	checkoutrest.NewHandler(s.checkout).Register(private)
	orderrest.NewHandler(s.order).Register(private)

	return r
}
