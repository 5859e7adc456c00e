package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gemtrove/internal/domain"
	"gemtrove/internal/service"
)

// GemHandler handles gem listing endpoints.
type GemHandler struct {
	gemService service.GemService
}

// NewGemHandler creates a new GemHandler.
func NewGemHandler(gemService service.GemService) *GemHandler {
	return &GemHandler{gemService: gemService}
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// List handles GET /api/v1/gems
// @Summary List published gems
// @Tags gems
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Router /gems [get]
func (h *GemHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	status := domain.GemStatus(c.DefaultQuery("status", string(domain.GemStatusPublished)))
	gems, total, err := h.gemService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, gems, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetBySlug handles GET /api/v1/gems/:slug
// @Summary Get a gem by slug
// @Tags gems
// @Produce json
// @Param slug path string true "Gem slug"
// @Router /gems/{slug} [get]
func (h *GemHandler) GetBySlug(c *gin.Context) {
	gem, err := h.gemService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gem)
}

// Create handles POST /api/v1/gems
// @Summary Create a gem (admin)
// @Tags gems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /gems [post]
func (h *GemHandler) Create(c *gin.Context) {
	var input service.GemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	gem, err := h.gemService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gem)
}

// Update handles PUT /api/v1/gems/:id
// @Summary Update a gem (admin)
// @Tags gems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /gems/{id} [put]
func (h *GemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid gem ID")
		return
	}

	var input service.GemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	gem, err := h.gemService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gem)
}

// Delete handles DELETE /api/v1/gems/:id
// @Summary Delete a gem (admin)
// @Tags gems
// @Produce json
// @Security BearerAuth
// @Router /gems/{id} [delete]
func (h *GemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid gem ID")
		return
	}

	if err := h.gemService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "gem deleted"})
}
