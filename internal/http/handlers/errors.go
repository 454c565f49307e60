package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"railbook/internal/domain"
)

// RespondDomainError maps the error taxonomy to HTTP statuses in one place.
// Capacity exhaustion is a business outcome (400), persistence conflicts are
// transient (500, logged, retryable). Internal details never reach the
// caller.
func RespondDomainError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsCapacity(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("persistence conflict")
		RespondError(c, http.StatusInternalServerError, "a transient storage error occurred, please try again")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		RespondError(c, http.StatusInternalServerError, "something went wrong")
	}
}
