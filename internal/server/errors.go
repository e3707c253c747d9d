package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	billdomain "github.com/chatgptnotes/esic-billing/internal/bill/domain"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	draftdomain "github.com/chatgptnotes/esic-billing/internal/draft/domain"
	lettersdomain "github.com/chatgptnotes/esic-billing/internal/letters/domain"
	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

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

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, billdomain.ErrInvalidVisit),
		errors.Is(err, billdomain.ErrEmptyBill),
		errors.Is(err, visitdomain.ErrInvalidVisit),
		errors.Is(err, visitdomain.ErrUnknownKind),
		errors.Is(err, catalogdomain.ErrUnknownKind),
		errors.Is(err, draftdomain.ErrInvalidVisit),
		errors.Is(err, draftdomain.ErrEmptyDraft),
		errors.Is(err, lettersdomain.ErrInvalidVisit),
		errors.Is(err, lettersdomain.ErrUnknownKind):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, draftdomain.ErrDraftNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
