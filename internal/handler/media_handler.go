package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gemtrove/internal/service"
)

// MediaHandler handles image upload, deletion, inspection, and proxying.
type MediaHandler struct {
	media service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(media service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// readUpload pulls the "image" form file into memory and sniffs its content type.
func readUpload(c *gin.Context) (buf []byte, name, mimeType string, ok bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image field is required")
		return nil, "", "", false
	}
	defer func() { _ = file.Close() }()

	buf, err = io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_IMAGE", "could not read uploaded image")
		return nil, "", "", false
	}

	// Trust magic bytes over the client-declared content type.
	mimeType = http.DetectContentType(buf)
	if len(buf) == 0 {
		mimeType = header.Header.Get("Content-Type")
	}
	return buf, header.Filename, mimeType, true
}

// Upload handles POST /api/v1/images
// @Summary Upload an image
// @Description Upload an image (JPEG, PNG, or WebP, max 10MB); stores four size variants
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to upload"
// @Success 201 {object} APIResponse "Upload result with per-variant URLs"
// @Failure 400 {object} APIResponse "Missing image or unsupported type"
// @Failure 413 {object} APIResponse "Image too large"
// @Security BearerAuth
// @Router /images [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	buf, name, mimeType, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := h.media.UploadImage(c.Request.Context(), buf, name, mimeType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Delete handles DELETE /api/v1/images/:id
// @Summary Delete an image
// @Description Best-effort deletion of all stored variants of an asset
// @Tags images
// @Produce json
// @Param id path string true "Asset ID (UUID)"
// @Security BearerAuth
// @Router /images/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid asset ID")
		return
	}

	deleted := h.media.DeleteImage(c.Request.Context(), assetID.String())
	RespondOK(c, gin.H{"deleted": deleted})
}

// Inspect handles POST /api/v1/images/inspect
// @Summary Inspect an image
// @Description Validate and report image dimensions and pixel layout without storing it
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to inspect"
// @Security BearerAuth
// @Router /images/inspect [post]
func (h *MediaHandler) Inspect(c *gin.Context) {
	buf, _, mimeType, ok := readUpload(c)
	if !ok {
		return
	}

	info, err := h.media.InspectImage(buf, mimeType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, info)
}

// Proxy handles GET /api/v1/images/:filename
// @Summary Serve a stored image
// @Description Fetch a stored variant by filename and re-serve its bytes
// @Tags images
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Router /images/{filename} [get]
func (h *MediaHandler) Proxy(c *gin.Context) {
	filename := c.Param("filename")

	img, err := h.media.GetImage(c.Request.Context(), filename)
	if err != nil {
		HandleError(c, err)
		return
	}
	if img == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "image not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	if img.ETag != "" {
		c.Header("ETag", fmt.Sprintf("%q", img.ETag))
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
