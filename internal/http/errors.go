package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"super-control/internal/auth"
	"super-control/internal/service"
)

const (
	msgBadCredentials     = "incorrect username or password"
	msgInvalidToken       = "could not validate credentials"
	msgInactiveUser       = "inactive user"
	msgServiceUnavailable = "service unavailable"
)

// writeError maps a service or auth error to its HTTP representation.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		unauthorized(c, msgBadCredentials)
	case errors.Is(err, auth.ErrInvalidToken):
		unauthorized(c, msgInvalidToken)
	case errors.Is(err, auth.ErrAccountInactive):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgInactiveUser})
	case errors.Is(err, auth.ErrBackendUnavailable):
		h.logger.WithError(err).Error("user directory unavailable")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": msgServiceUnavailable})
	case errors.Is(err, service.ErrStorageNotConfigured):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrListNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists), errors.Is(err, service.ErrUserDisabled):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrScrapeFailed):
		h.logger.WithError(err).Warn("receipt scrape failed")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
