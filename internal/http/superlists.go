package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"super-control/internal/domain"
	"super-control/internal/service"
)

type createFromURLRequest struct {
	URL       string `json:"url" binding:"required"`
	Order     string `json:"order" binding:"required"`
	IssueDate string `json:"issue_date" binding:"required"`
}

type updateSuperListRequest struct {
	Order     *string          `json:"order"`
	IssueDate *string          `json:"issue_date"`
	Products  []domain.Product `json:"products"`
}

// SuperListResponse is the public view of a supermarket list.
type SuperListResponse struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Order     string           `json:"order"`
	IssueDate string           `json:"issue_date"`
	Products  []domain.Product `json:"products"`
	Disabled  bool             `json:"disabled"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

func superListToResponse(list domain.SuperList) SuperListResponse {
	products := list.Products
	if products == nil {
		products = []domain.Product{}
	}
	return SuperListResponse{
		ID:        list.ID,
		Username:  list.Username,
		Order:     list.Order,
		IssueDate: list.IssueDate,
		Products:  products,
		Disabled:  list.Disabled,
		CreatedAt: list.CreatedAt.Format(time.RFC3339),
		UpdatedAt: list.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listSuperLists(c *gin.Context) {
	lists, err := h.lists.List(c.Request.Context(), sessionUser(c).Username)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]SuperListResponse, len(lists))
	for i := range lists {
		resp[i] = superListToResponse(lists[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getSuperList(c *gin.Context) {
	list, err := h.lists.Get(c.Request.Context(), sessionUser(c).Username, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, superListToResponse(*list))
}

func (h *Handler) createSuperList(c *gin.Context) {
	var products []domain.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.lists.Create(c.Request.Context(), sessionUser(c).Username, service.SuperListInput{
		Order:     c.Query("order"),
		IssueDate: c.Query("issue_date"),
		Products:  products,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, superListToResponse(*list))
}

func (h *Handler) createSuperListFromURL(c *gin.Context) {
	var req createFromURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.lists.CreateFromURL(c.Request.Context(), sessionUser(c).Username, service.SuperListURLInput{
		URL:       req.URL,
		Order:     req.Order,
		IssueDate: req.IssueDate,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"list_id":  list.ID,
		"products": len(list.Products),
	}).Info("list created from receipt")
	c.JSON(http.StatusCreated, superListToResponse(*list))
}

func (h *Handler) updateSuperList(c *gin.Context) {
	var req updateSuperListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.lists.Update(c.Request.Context(), sessionUser(c).Username, c.Param("id"), domain.SuperListUpdate{
		Order:     req.Order,
		IssueDate: req.IssueDate,
		Products:  req.Products,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, superListToResponse(*list))
}

func (h *Handler) deleteSuperList(c *gin.Context) {
	list, err := h.lists.Delete(c.Request.Context(), sessionUser(c).Username, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, superListToResponse(*list))
}
