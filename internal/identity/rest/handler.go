package rest

import (
	"context"
	"net/http"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Authenticator is the part of the identity service the middleware needs.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

var rules = []httpx.Rule{
	httpx.InvalidInput(app.ErrInvalidInput),
	httpx.Unauthenticated(app.ErrInvalidCredentials),
	httpx.Unauthenticated(app.ErrUnauthenticated),
}

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/auth")
	g.POST("/sign-in", h.SignIn)
	g.POST("/sign-out", h.SignOut)
}

type signInReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "email and password are required")
		return
	}

	sess, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *Handler) SignOut(c *gin.Context) {
	tok, ok := httpx.BearerToken(c)
	if !ok {
		httpx.Abort(c, app.ErrUnauthenticated, rules...)
		return
	}
	if err := h.svc.SignOut(c.Request.Context(), tok); err != nil {
		httpx.Abort(c, err, rules...)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequireUser rejects requests without a live session and records the user id.
func RequireUser(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := httpx.BearerToken(c)
		if !ok {
			httpx.Abort(c, app.ErrUnauthenticated, rules...)
			return
		}
		who, err := auth.Authenticate(c.Request.Context(), tok)
		if err != nil {
			httpx.Abort(c, err, rules...)
			return
		}
		httpx.SetUserID(c, who.UserID)
		c.Next()
	}
}
