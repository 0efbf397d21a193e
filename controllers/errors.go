package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelfood/pkg/cartstore"
	"hotelfood/pkg/resp"
	"hotelfood/services"
)

// handleError maps service errors onto the response envelope.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, cartstore.ErrConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case services.IsValidation(err), errors.Is(err, services.ErrNoSession):
		resp.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
