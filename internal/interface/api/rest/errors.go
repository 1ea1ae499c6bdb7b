package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contacts-api/internal/application/services"
	"contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
)

// writeError maps service errors to responses. Unknown errors are logged and hidden.
func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": verr.Fields,
		})
	case errors.Is(err, contact.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": contact.ErrNotFound.Error()})
	case errors.Is(err, contact.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": contact.ErrEmailTaken.Error()})
	case errors.Is(err, contact.ErrInvalidWindow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": contact.ErrInvalidWindow.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrUserExists.Error()})
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": user.ErrNotFound.Error()})
	case errors.Is(err, services.ErrUpload):
		logger.Error(op+" error", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": services.ErrUpload.Error()})
	default:
		logger.Error(op+" error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"details": details,
	})
}
