package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithValidationErrors returns the field-keyed 400 body used for every
// domain invariant failure, uniqueness conflicts included.
func RespondWithValidationErrors(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  http.StatusText(http.StatusBadRequest),
		"errors": errs,
	})
}

const pgUniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
// Uniqueness is enforced at the storage layer so concurrent writers racing
// past the application-level checks still get rejected.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}
