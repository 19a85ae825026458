package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"super-control/internal/auth"
	"super-control/internal/domain"
)

const currentUserKey = "currentUser"

// requireSession resolves the bearer token to the active user and stores it
// on the context. Every rejection aborts the chain.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.metrics.RecordSessionRejection(auth.ReasonCredentialsInvalid)
			unauthorized(c, msgInvalidToken)
			return
		}

		user, err := h.auth.RequireSession(c.Request.Context(), token)
		if err != nil {
			h.metrics.RecordSessionRejection(auth.RejectionReason(err))
			h.writeError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok && user != nil
}

// sessionUser returns the user stored by requireSession.
func sessionUser(c *gin.Context) *domain.User {
	user, _ := currentUser(c)
	return user
}
