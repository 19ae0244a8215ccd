package handler

import (
	"github.com/apothekehub/backend/internal/application/backup"
	"github.com/gin-gonic/gin"
)

// BackupHandler handles marketing backup API endpoints
type BackupHandler struct {
	BaseHandler
	backupService *backup.Service
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *backup.Service) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// RestoreRequest names the SKU whose backup should be applied
type RestoreRequest struct {
	SKU string `json:"sku" binding:"required,min=1,max=100"`
}

// List godoc
// @Summary      List marketing backups
// @Tags         backups
// @Produce      json
// @Success      200 {object} dto.Response{data=[]backup.BackupResponse}
// @Router       /backups [get]
func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, backups)
}

// RestoreAll godoc
// @Summary      Restore every backup
// @Description  Apply each stored backup to the product carrying its SKU. Backups without a matching product are reported as skipped, not failed.
// @Tags         backups
// @Produce      json
// @Success      200 {object} dto.Response{data=backup.RestoreAllResult}
// @Router       /backups/restore [post]
func (h *BackupHandler) RestoreAll(c *gin.Context) {
	result, err := h.backupService.RestoreAll(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// BackupProduct godoc
// @Summary      Back up a product's marketing content
// @Description  Snapshot the marketing fields and gallery of one product. Products without a SKU or without marketing content are reported, not failed.
// @Tags         backups
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=backup.BackupResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/backup [post]
func (h *BackupHandler) BackupProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	result, err := h.backupService.BackupProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RestoreProduct godoc
// @Summary      Restore a backup onto a product
// @Description  Apply the backup stored under the given SKU to the product. A missing backup is a reported outcome, not an error.
// @Tags         backups
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body RestoreRequest true "Backup SKU"
// @Success      200 {object} dto.Response{data=backup.RestoreResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/restore [post]
func (h *BackupHandler) RestoreProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.backupService.RestoreToProduct(c.Request.Context(), productID, req.SKU)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
