package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"super-control/internal/service"
)

const maxImageSize = 10 << 20

// ImageResponse describes a stored receipt image.
type ImageResponse struct {
	Filename     string  `json:"filename"`
	ContentType  string  `json:"content_type,omitempty"`
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	URL          string  `json:"url"`
	LastModified *string `json:"last_modified,omitempty"`
}

func imageToResponse(img service.StoredImage) ImageResponse {
	resp := ImageResponse{
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Key:         img.Key,
		Size:        img.Size,
		URL:         img.URL,
	}
	if img.LastModified != nil && !img.LastModified.IsZero() {
		v := img.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func (h *Handler) uploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, fmt.Errorf("image field is required: %w", err))
		return
	}
	if header.Size > maxImageSize {
		badRequest(c, fmt.Errorf("image exceeds %d bytes", maxImageSize))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	img, err := h.images.Upload(c.Request.Context(), sessionUser(c).Username, service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, imageToResponse(*img))
}

func (h *Handler) listImages(c *gin.Context) {
	images, err := h.images.List(c.Request.Context(), sessionUser(c).Username)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ImageResponse, len(images))
	for i := range images {
		resp[i] = imageToResponse(images[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteImage(c *gin.Context) {
	name := c.Param("name")
	if err := h.images.Delete(c.Request.Context(), sessionUser(c).Username, name); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
