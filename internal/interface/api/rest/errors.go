package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-account-api/internal/application/services"
	"user-account-api/internal/domain/query"
	"user-account-api/internal/domain/user"
	"user-account-api/internal/interface/api/rest/validator"
	"user-account-api/pkg/validation"
)

var errStatus = map[*user.Error]int{
	user.ErrUserNotFound:       http.StatusNotFound,
	user.ErrUserNotActive:      http.StatusForbidden,
	user.ErrEmailAlreadyExists: http.StatusConflict,
	user.ErrUserNameExists:     http.StatusConflict,
	user.ErrParameterRequired:  http.StatusBadRequest,
	user.ErrNothingToUpdate:    http.StatusBadRequest,
	user.ErrInvalidID:          http.StatusBadRequest,
	user.ErrPasswordRequired:   http.StatusBadRequest,
	user.ErrRoleRequired:       http.StatusBadRequest,
	user.ErrEmailRequired:      http.StatusBadRequest,
	user.ErrFirstNameRequired:  http.StatusBadRequest,
	user.ErrLastNameRequired:   http.StatusBadRequest,
}

// respondError writes the JSON error for err. Anything it does not recognise
// is logged under op and reported as a 500 without details.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	if verr, ok := validation.AsError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": verr.Fields,
		})
		return
	}
	if errors.Is(err, validator.ErrMalformedBody) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errors.Is(err, query.ErrOffsetOutOfRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var derr *user.Error
	if errors.As(err, &derr) {
		if status, ok := errStatus[derr]; ok {
			c.JSON(status, gin.H{"error": derr.Message, "code": derr.Code})
			return
		}
	}

	logger.Error(op+"() error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
