package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"zigzax/pkg/apperr"
)

// statusFor maps service-layer errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case apperr.IsValidation(err), apperr.IsState(err), errors.Is(err, apperr.ErrUnknownCurrency):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail writes the flat {"error": ...} shape the frontend expects.
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
