package handler

import (
	contentapp "github.com/apothekehub/backend/internal/application/content"
	"github.com/gin-gonic/gin"
)

// NewsHandler handles dashboard announcement API endpoints
type NewsHandler struct {
	BaseHandler
	newsService *contentapp.NewsService
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsService *contentapp.NewsService) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
	}
}

// Create godoc
// @Summary      Create an announcement
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateNewsPostRequest true "Announcement"
// @Success      201 {object} dto.Response{data=contentapp.NewsPostResponse}
// @Router       /news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	var req contentapp.CreateNewsPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.newsService.CreateNewsPost(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, post)
}

// List godoc
// @Summary      List announcements
// @Description  Pinned announcements come first, then newest first
// @Tags         news
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]contentapp.NewsPostResponse,meta=dto.Meta}
// @Router       /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	var req contentapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.newsService.ListNewsPosts(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an announcement
// @Tags         news
// @Produce      json
// @Param        id path string true "Announcement ID" format(uuid)
// @Success      200 {object} dto.Response{data=contentapp.NewsPostResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /news/{id} [get]
func (h *NewsHandler) GetByID(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID format")
		return
	}

	post, err := h.newsService.GetNewsPost(c.Request.Context(), postID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, post)
}

// Update godoc
// @Summary      Update an announcement
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id path string true "Announcement ID" format(uuid)
// @Param        request body contentapp.UpdateNewsPostRequest true "Announcement content"
// @Success      200 {object} dto.Response{data=contentapp.NewsPostResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /news/{id} [put]
func (h *NewsHandler) Update(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID format")
		return
	}

	var req contentapp.UpdateNewsPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.newsService.UpdateNewsPost(c.Request.Context(), postID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, post)
}

// SetPinned godoc
// @Summary      Pin or unpin an announcement
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id path string true "Announcement ID" format(uuid)
// @Param        request body contentapp.SetPinnedRequest true "Pinned flag"
// @Success      200 {object} dto.Response{data=contentapp.NewsPostResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /news/{id}/pin [put]
func (h *NewsHandler) SetPinned(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID format")
		return
	}

	var req contentapp.SetPinnedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.newsService.SetPinned(c.Request.Context(), postID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, post)
}

// Delete godoc
// @Summary      Delete an announcement
// @Tags         news
// @Produce      json
// @Param        id path string true "Announcement ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /news/{id} [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID format")
		return
	}

	if err := h.newsService.DeleteNewsPost(c.Request.Context(), postID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
