// Package httpx holds the gin plumbing shared by the REST handlers.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeFailedPrecondition = "FAILED_PRECONDITION"
	CodeInternal           = "INTERNAL"
)

// Rule maps a sentinel error to a response.
type Rule struct {
	Err    error
	Status int
	Code   string
}

func InvalidInput(err error) Rule {
	return Rule{Err: err, Status: http.StatusBadRequest, Code: CodeInvalidArgument}
}

func Unauthenticated(err error) Rule {
	return Rule{Err: err, Status: http.StatusUnauthorized, Code: CodeUnauthenticated}
}

func NotFound(err error) Rule {
	return Rule{Err: err, Status: http.StatusNotFound, Code: CodeNotFound}
}

func Unprocessable(err error) Rule {
	return Rule{Err: err, Status: http.StatusUnprocessableEntity, Code: CodeFailedPrecondition}
}

// StatusFor returns the status, code and client message for err. The first matching rule
// wins; unmatched errors are internal and their text is not exposed.
func StatusFor(err error, rules ...Rule) (int, string, string) {
	for _, r := range rules {
		if errors.Is(err, r.Err) {
			return r.Status, r.Code, err.Error()
		}
	}
	return http.StatusInternalServerError, CodeInternal, "internal error"
}

// Abort writes err as {"error", "code"} and stops the handler chain.
func Abort(c *gin.Context, err error, rules ...Rule) {
	status, code, msg := StatusFor(err, rules...)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}

// BadRequest reports a malformed body or query.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "code": CodeInvalidArgument})
}
