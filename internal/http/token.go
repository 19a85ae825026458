package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"super-control/internal/auth"
	"super-control/internal/metrics"
)

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// loginForToken accepts the OAuth2 password flow form as well as a JSON body.
func (h *Handler) loginForToken(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordLogin(auth.RejectionReason(err))
		h.writeError(c, err)
		return
	}
	h.metrics.RecordLogin(metrics.LoginSucceeded)

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, userToResponse(*sessionUser(c)))
}
