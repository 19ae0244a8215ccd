package handler

import (
	"github.com/apothekehub/backend/internal/application/feedsync"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrphanHandler handles orphaned-product API endpoints
type OrphanHandler struct {
	BaseHandler
	orphanService *feedsync.OrphanService
}

// NewOrphanHandler creates a new OrphanHandler
func NewOrphanHandler(orphanService *feedsync.OrphanService) *OrphanHandler {
	return &OrphanHandler{
		orphanService: orphanService,
	}
}

// CheckOrphansRequest optionally overrides the feed URL for the check
type CheckOrphansRequest struct {
	FeedURL string `json:"feed_url" binding:"omitempty,url"`
}

// DeleteOrphansRequest lists the confirmed orphan product IDs
type DeleteOrphansRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// Check godoc
// @Summary      Check for orphaned products
// @Description  Fetch the feed and list catalog products whose SKU no longer appears in it. Nothing is deleted.
// @Tags         orphans
// @Accept       json
// @Produce      json
// @Param        request body CheckOrphansRequest false "Check options"
// @Success      200 {object} dto.Response{data=feedsync.OrphanCheckResult}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orphans/check [post]
func (h *OrphanHandler) Check(c *gin.Context) {
	var req CheckOrphansRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.orphanService.CheckOrphans(c.Request.Context(), req.FeedURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete confirmed orphans
// @Description  Delete the listed products, archiving marketing content before each removal
// @Tags         orphans
// @Accept       json
// @Produce      json
// @Param        request body DeleteOrphansRequest true "Orphan IDs to delete"
// @Success      200 {object} dto.Response{data=feedsync.DeleteOrphansResult}
// @Router       /orphans [delete]
func (h *OrphanHandler) Delete(c *gin.Context) {
	var req DeleteOrphansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format: "+raw)
			return
		}
		ids = append(ids, id)
	}

	result, err := h.orphanService.DeleteOrphans(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
