package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"api-dispatcher-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrSpecNotFound),
		errors.Is(err, domain.ErrAPINotFound),
		errors.Is(err, domain.ErrDeploymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptySpec),
		errors.Is(err, domain.ErrUnknownSpecVersion),
		errors.Is(err, domain.ErrInvalidSpec),
		errors.Is(err, domain.ErrUnresolvableRef),
		errors.Is(err, domain.ErrNoRoutes),
		errors.Is(err, domain.ErrMissingSpecSource),
		errors.Is(err, domain.ErrInvalidAPIID),
		errors.Is(err, domain.ErrInvalidDeploymentID),
		errors.Is(err, domain.ErrUnsupportedCloud),
		errors.Is(err, domain.ErrStageRequired),
		errors.Is(err, domain.ErrMissingDeployTarget),
		errors.Is(err, domain.ErrMissingAppLocation),
		errors.Is(err, domain.ErrAppDeployUnsupported),
		errors.Is(err, domain.ErrSpecDeployUnsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Upstream provider failures
	case errors.Is(err, domain.ErrDeployFailed),
		errors.Is(err, domain.ErrImportRejected):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
