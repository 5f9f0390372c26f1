package rest

import (
	"net/http"

	checkoutrest "github.com/dwikikusuma/rajah-storefront/internal/checkout/rest"
	"github.com/dwikikusuma/rajah-storefront/internal/order/app"
	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

var rules = append([]httpx.Rule{
	httpx.Unauthenticated(app.ErrUnauthenticated),
	httpx.InvalidInput(app.ErrInvalidInput),
	httpx.Unprocessable(app.ErrEmptyCart),
}, checkoutrest.Rules...)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the order routes. r must already require a signed-in user.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/orders", h.Place)
	r.GET("/orders", h.History)
}

type placeReq struct {
	DeliveryType        string          `json:"delivery_type"`
	Customer            domain.Customer `json:"customer"`
	DeliveryAddress     *domain.Address `json:"delivery_address"`
	SpecialInstructions string          `json:"special_instructions"`
}

func (h *Handler) Place(c *gin.Context) {
	var req placeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), domain.PlaceOrderRequest{
		UserID:              httpx.UserID(c),
		DeliveryType:        req.DeliveryType,
		Customer:            req.Customer,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) History(c *gin.Context) {
	orders, err := h.svc.History(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
