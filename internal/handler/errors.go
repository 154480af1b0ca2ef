package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/repository"
	"github.com/CoolVinz/village-shop-sub001/internal/service"
)

// respondError maps the service error taxonomy to HTTP statuses.
// Nothing here inspects message text; only error kinds decide status.
func respondError(c *gin.Context, err error) {
	var denial *service.DenialError
	if errors.As(err, &denial) {
		status := http.StatusForbidden
		label := "Forbidden"
		if denial.Reason == service.DenyUnauthenticated {
			status = http.StatusUnauthorized
			label = "Unauthorized"
		}
		c.JSON(status, dto.ErrorResponse{
			Error:   label,
			Message: denial.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "unexpected error",
		})
	}
}
