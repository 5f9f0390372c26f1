package rest

import (
	"net/http"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	"github.com/dwikikusuma/rajah-storefront/internal/checkout/app"
	"github.com/dwikikusuma/rajah-storefront/internal/checkout/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Rules maps checkout failures to responses. Order placement reuses them.
var Rules = []httpx.Rule{
	httpx.Unauthenticated(app.ErrUnauthenticated),
	httpx.Unauthenticated(cartapp.ErrUnauthenticated),
	httpx.InvalidInput(app.ErrInvalidInput),
	httpx.Unprocessable(app.ErrEmptyCart),
	httpx.Unprocessable(app.ErrNoZone),
	httpx.Unprocessable(domain.ErrBelowMinimum),
}

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the quote route. r must already require a signed-in user.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/checkout/quote", h.Quote)
}

type quoteReq struct {
	Method   string `json:"method"`
	Postcode string `json:"postcode"`
}

func (h *Handler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	method, ok := domain.ParseMethod(req.Method)
	if !ok {
		httpx.BadRequest(c, "method must be delivery or collection")
		return
	}

	q, err := h.svc.Quote(c.Request.Context(), httpx.UserID(c), domain.DeliveryRequest{
		Method:   method,
		Postcode: req.Postcode,
	})
	if err != nil {
		httpx.Abort(c, err, Rules...)
		return
	}
	c.JSON(http.StatusOK, q)
}
