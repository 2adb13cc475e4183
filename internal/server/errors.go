package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// The error taxonomy maps onto HTTP like so: validation errors are 400 and
// persist nothing; not-found is 404 and a no-op; render failures are 502
// but leave the invoice untouched; anything else is 500. Backend failures
// never reach this layer because the gateway recovers them.

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, n := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"notice": n})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, notice) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorNotice(validationMessage(err))
	case errors.Is(err, invoicedomain.ErrNotFound):
		return http.StatusNotFound, errorNotice("Invoice not found!")
	case errors.Is(err, invoicedomain.ErrRender):
		return http.StatusBadGateway, errorNotice("Error generating PDF. Please try again.")
	default:
		return http.StatusInternalServerError, errorNotice("Something went wrong. Please try again.")
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrNameRequired),
		errors.Is(err, catalogdomain.ErrNegativeRate),
		errors.Is(err, catalogdomain.ErrNegativeStock),
		errors.Is(err, invoicedomain.ErrMissingParty),
		errors.Is(err, invoicedomain.ErrMissingDate),
		errors.Is(err, invoicedomain.ErrMissingNumber),
		errors.Is(err, invoicedomain.ErrNoLineItems):
		return true
	default:
		return false
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, invoicedomain.ErrNoLineItems):
		return "Please add at least one item"
	case errors.Is(err, invoicedomain.ErrMissingParty),
		errors.Is(err, invoicedomain.ErrMissingDate),
		errors.Is(err, invoicedomain.ErrMissingNumber):
		return "Please fill all required fields"
	case errors.Is(err, catalogdomain.ErrNameRequired):
		return "Name is required"
	case errors.Is(err, catalogdomain.ErrNegativeRate):
		return "Rate cannot be negative"
	case errors.Is(err, catalogdomain.ErrNegativeStock):
		return "Stock cannot be negative"
	default:
		return "Invalid request"
	}
}
