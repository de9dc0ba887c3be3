package response

import (
	"errors"
	"net/http"

	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform shape of every JSON response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta carries pagination details for list responses.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 list response with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta:    &Meta{Total: total, Page: page, Limit: limit},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Error maps a service error onto an HTTP status using the domain error
// taxonomy. Unknown errors become a generic 500; details stay in the logs.
func Error(c *gin.Context, err error) {
	var (
		validationErr  *domain.ValidationError
		eligibilityErr *domain.EligibilityError
		notFoundErr    *domain.NotFoundError
		conflictErr    *domain.ConflictError
		forbiddenErr   *domain.ForbiddenError
		unauthErr      *domain.UnauthorizedError
		stateErr       *domain.InvalidStateError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: validationErr.Error()})
	case errors.As(err, &eligibilityErr):
		c.JSON(http.StatusUnprocessableEntity, Envelope{Success: false, Error: eligibilityErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, Envelope{Success: false, Error: notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, Envelope{Success: false, Error: conflictErr.Error()})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, Envelope{Success: false, Error: forbiddenErr.Error()})
	case errors.As(err, &unauthErr):
		c.JSON(http.StatusUnauthorized, Envelope{Success: false, Error: unauthErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, Envelope{Success: false, Error: stateErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "internal server error"})
	}
}
