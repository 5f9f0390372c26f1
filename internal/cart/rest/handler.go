package rest

import (
	"net/http"

	"github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	"github.com/dwikikusuma/rajah-storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

var rules = []httpx.Rule{
	httpx.Unauthenticated(app.ErrUnauthenticated),
	httpx.InvalidInput(app.ErrInvalidInput),
	httpx.NotFound(app.ErrNotFound),
	httpx.Unprocessable(app.ErrNotPurchasable),
}

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the cart routes. r must already require a signed-in user.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/cart", h.Get)
	r.DELETE("/cart", h.Clear)
	r.POST("/cart/items", h.AddItem)
	r.PATCH("/cart/items/:id", h.UpdateItem)
	r.DELETE("/cart/items/:id", h.RemoveItem)
}

type cartView struct {
	Items []domain.Line `json:"items"`
	Count int           `json:"count"`
	Total float64       `json:"total"`
}

func toView(c domain.Cart) cartView {
	items := c.Lines
	if items == nil {
		items = []domain.Line{}
	}
	return cartView{Items: items, Count: c.Count(), Total: catalog.RoundPrice(c.Total())}
}

func (h *Handler) Get(c *gin.Context) {
	cart, err := h.svc.Get(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, toView(cart))
}

type addItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "product_id and variant_id are required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.svc.AddVariant(c.Request.Context(), httpx.UserID(c), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, toView(cart))
}

type updateItemReq struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "quantity is required")
		return
	}

	cart, err := h.svc.UpdateQuantity(c.Request.Context(), httpx.UserID(c), c.Param("id"), *req.Quantity)
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, toView(cart))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	cart, err := h.svc.Remove(c.Request.Context(), httpx.UserID(c), c.Param("id"))
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, toView(cart))
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), httpx.UserID(c)); err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.Status(http.StatusNoContent)
}
