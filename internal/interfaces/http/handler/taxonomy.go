package handler

import (
	catalogapp "github.com/apothekehub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// TaxonomyHandler handles feed taxonomy API endpoints
type TaxonomyHandler struct {
	BaseHandler
	taxonomyService *catalogapp.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService *catalogapp.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
	}
}

// List godoc
// @Summary      List feed taxonomy
// @Description  List every category observed in the feed with its subcategories
// @Tags         taxonomy
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.TaxonomyResponse}
// @Router       /catalog/taxonomy [get]
func (h *TaxonomyHandler) List(c *gin.Context) {
	taxonomy, err := h.taxonomyService.ListTaxonomy(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, taxonomy)
}

// GetCategory godoc
// @Summary      Get one taxonomy category
// @Tags         taxonomy
// @Produce      json
// @Param        category path string true "Category name"
// @Success      200 {object} dto.Response{data=catalogapp.TaxonomyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/taxonomy/{category} [get]
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		h.BadRequest(c, "Category is required")
		return
	}

	entry, err := h.taxonomyService.GetCategory(c.Request.Context(), category)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}
