package handler

import (
	"github.com/apothekehub/backend/internal/application/feedsync"
	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"github.com/gin-gonic/gin"
)

// SyncHandler handles feed synchronization API endpoints
type SyncHandler struct {
	BaseHandler
	syncService    *feedsync.SyncService
	historyService *feedsync.HistoryService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *feedsync.SyncService, historyService *feedsync.HistoryService) *SyncHandler {
	return &SyncHandler{
		syncService:    syncService,
		historyService: historyService,
	}
}

// TriggerSync godoc
// @Summary      Run a feed sync
// @Description  Fetch the product feed and reconcile the catalog against it. Only one sync runs at a time.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body feedsync.SyncRequest false "Sync options"
// @Success      200 {object} dto.Response{data=feedsync.SyncResult}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sync [post]
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	var req feedsync.SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	req.Trigger = syncdomain.SyncTriggerManual

	result, err := h.syncService.SyncFromFeed(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListHistory godoc
// @Summary      List sync runs
// @Tags         sync
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status" Enums(pending, running, completed, failed)
// @Param        trigger query string false "Filter by trigger" Enums(manual, scheduled)
// @Success      200 {object} dto.Response{data=[]feedsync.SyncHistoryResponse,meta=dto.Meta}
// @Router       /sync/history [get]
func (h *SyncHandler) ListHistory(c *gin.Context) {
	var req feedsync.ListHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.historyService.ListSyncRuns(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetLatestRun godoc
// @Summary      Get the most recent sync run
// @Tags         sync
// @Produce      json
// @Success      200 {object} dto.Response{data=feedsync.SyncHistoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sync/history/latest [get]
func (h *SyncHandler) GetLatestRun(c *gin.Context) {
	run, err := h.historyService.GetLatestSyncRun(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, run)
}

// GetRun godoc
// @Summary      Get one sync run
// @Tags         sync
// @Produce      json
// @Param        id path string true "Sync run ID" format(uuid)
// @Success      200 {object} dto.Response{data=feedsync.SyncHistoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sync/history/{id} [get]
func (h *SyncHandler) GetRun(c *gin.Context) {
	runID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sync run ID format")
		return
	}

	run, err := h.historyService.GetSyncRun(c.Request.Context(), runID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, run)
}
