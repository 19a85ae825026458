package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"super-control/internal/domain"
	"super-control/internal/service"
)

const birthDateLayout = "2006-01-02"

type signupRequest struct {
	Username  string  `json:"username" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	LastName  string  `json:"lastname" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	BirthDate *string `json:"birth_date"`
	Password  string  `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name      *string `json:"name"`
	LastName  *string `json:"lastname"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
	Password  *string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	LastName  string  `json:"lastname"`
	Email     string  `json:"email"`
	BirthDate *string `json:"birth_date,omitempty"`
	Disabled  bool    `json:"disabled"`
}

func userToResponse(user domain.User) UserResponse {
	resp := UserResponse{
		Username: user.Username,
		Name:     user.Name,
		LastName: user.LastName,
		Email:    user.Email,
		Disabled: user.Disabled,
	}
	if user.BirthDate != nil {
		v := user.BirthDate.Format(birthDateLayout)
		resp.BirthDate = &v
	}
	return resp
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("birth_date must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Name:      req.Name,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.WithField("username", user.Username).Info("user registered")
	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	// unknown fields are rejected, so the body is decoded without gin's binder
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	var req updateUserRequest
	if err := decoder.Decode(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid update body: %w", err))
		return
	}
	if req.BirthDate != nil && *req.BirthDate == "" {
		badRequest(c, errors.New("birth_date must not be empty"))
		return
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), sessionUser(c), c.Param("username"), service.UpdateInput{
		Name:      req.Name,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	user, err := h.users.Delete(c.Request.Context(), sessionUser(c), c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.WithField("username", user.Username).Info("user disabled")
	c.JSON(http.StatusOK, userToResponse(*user))
}
