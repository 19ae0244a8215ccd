package handler

import (
	contentapp "github.com/apothekehub/backend/internal/application/content"
	"github.com/gin-gonic/gin"
)

// OpportunityHandler handles seasonal campaign API endpoints
type OpportunityHandler struct {
	BaseHandler
	opportunityService *contentapp.OpportunityService
}

// NewOpportunityHandler creates a new OpportunityHandler
func NewOpportunityHandler(opportunityService *contentapp.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
	}
}

// Create godoc
// @Summary      Create a campaign
// @Description  Create a seasonal campaign page. The slug is derived from the title when not given.
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateOpportunityRequest true "Campaign"
// @Success      201 {object} dto.Response{data=contentapp.OpportunityResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req contentapp.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	opportunity, err := h.opportunityService.CreateOpportunity(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, opportunity)
}

// List godoc
// @Summary      List campaigns
// @Tags         opportunities
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]contentapp.OpportunityResponse,meta=dto.Meta}
// @Router       /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	var req contentapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.opportunityService.ListOpportunities(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get a campaign
// @Tags         opportunities
// @Produce      json
// @Param        id path string true "Campaign ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.OpportunityResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(c *gin.Context) {
	opportunityID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID format")
		return
	}

	opportunity, err := h.opportunityService.GetOpportunity(c.Request.Context(), opportunityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, opportunity)
}

// GetBySlug godoc
// @Summary      Get a campaign by slug
// @Tags         opportunities
// @Produce      json
// @Param        slug path string true "Campaign slug"
// @Success      200 {object} dto.Response{data=contentapp.OpportunityResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities/slug/{slug} [get]
func (h *OpportunityHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Campaign slug is required")
		return
	}

	opportunity, err := h.opportunityService.GetOpportunityBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, opportunity)
}

// Update godoc
// @Summary      Update a campaign
// @Description  Replace the campaign content. The slug never changes after creation.
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID" format(uuid)
// @Param        request body contentapp.UpdateOpportunityRequest true "Campaign content"
// @Success      200 {object} dto.Response{data=contentapp.OpportunityResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *gin.Context) {
	opportunityID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID format")
		return
	}

	var req contentapp.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	opportunity, err := h.opportunityService.UpdateOpportunity(c.Request.Context(), opportunityID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, opportunity)
}

// Delete godoc
// @Summary      Delete a campaign
// @Tags         opportunities
// @Produce      json
// @Param        id path string true "Campaign ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c *gin.Context) {
	opportunityID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID format")
		return
	}

	if err := h.opportunityService.DeleteOpportunity(c.Request.Context(), opportunityID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
