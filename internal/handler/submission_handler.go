package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gemtrove/internal/middleware"
	"gemtrove/internal/service"
)

// SubmissionHandler handles the public submission and moderation endpoints.
type SubmissionHandler struct {
	subService service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(subService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{subService: subService}
}

// Create handles POST /api/v1/submissions
// @Summary Submit a gem for review
// @Tags submissions
// @Accept json
// @Produce json
// @Router /submissions [post]
func (h *SubmissionHandler) Create(c *gin.Context) {
	var input service.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	sub, err := h.subService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sub)
}

// ListPending handles GET /api/v1/submissions
// @Summary List pending submissions (admin)
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Router /submissions [get]
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	offset, limit := pagination(c)

	subs, total, err := h.subService.ListPending(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, subs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *SubmissionHandler) reviewContext(c *gin.Context) (uuid.UUID, uuid.UUID, string, bool) {
	adminID, err := middleware.GetAdminID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin context")
		return uuid.Nil, uuid.Nil, "", false
	}

	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid submission ID")
		return uuid.Nil, uuid.Nil, "", false
	}

	var req reviewRequest
	_ = c.ShouldBindJSON(&req)
	return subID, adminID, req.Note, true
}

// Approve handles POST /api/v1/submissions/:id/approve
// @Summary Approve a submission (admin)
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Router /submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(c *gin.Context) {
	subID, adminID, note, ok := h.reviewContext(c)
	if !ok {
		return
	}

	gem, err := h.subService.Approve(c.Request.Context(), subID, adminID, note)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gem)
}

// Reject handles POST /api/v1/submissions/:id/reject
// @Summary Reject a submission (admin)
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Router /submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(c *gin.Context) {
	subID, adminID, note, ok := h.reviewContext(c)
	if !ok {
		return
	}

	sub, err := h.subService.Reject(c.Request.Context(), subID, adminID, note)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sub)
}
