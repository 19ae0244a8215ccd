package handler

import (
	catalogapp "github.com/apothekehub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// GalleryHandler handles product gallery API endpoints
type GalleryHandler struct {
	BaseHandler
	galleryService *catalogapp.GalleryService
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(galleryService *catalogapp.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
	}
}

// RequestUpload godoc
// @Summary      Request a gallery upload URL
// @Description  Validate the upload and return a presigned URL the client uploads to directly
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.RequestUploadRequest true "Upload request"
// @Success      200 {object} dto.Response{data=catalogapp.RequestUploadResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/gallery/upload-url [post]
func (h *GalleryHandler) RequestUpload(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.galleryService.RequestUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ConfirmUpload godoc
// @Summary      Confirm a gallery upload
// @Description  Register a completed upload as a gallery image after verifying the object exists
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ConfirmUploadRequest true "Upload confirmation"
// @Success      201 {object} dto.Response{data=catalogapp.GalleryImageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/gallery [post]
func (h *GalleryHandler) ConfirmUpload(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	image, err := h.galleryService.ConfirmUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, image)
}

// List godoc
// @Summary      List gallery images
// @Tags         gallery
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.GalleryImageResponse}
// @Router       /catalog/products/{id}/gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	images, err := h.galleryService.ListImages(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, images)
}

// SetTags godoc
// @Summary      Set gallery image tags
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        imageId path string true "Image ID" format(uuid)
// @Param        request body catalogapp.SetImageTagsRequest true "Tags"
// @Success      200 {object} dto.Response{data=catalogapp.GalleryImageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/gallery/{imageId}/tags [put]
func (h *GalleryHandler) SetTags(c *gin.Context) {
	imageID, err := parseIDParam(c, "imageId")
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	var req catalogapp.SetImageTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	image, err := h.galleryService.SetTags(c.Request.Context(), imageID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, image)
}

// Delete godoc
// @Summary      Delete a gallery image
// @Description  Remove the stored object and the image record
// @Tags         gallery
// @Produce      json
// @Param        imageId path string true "Image ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/gallery/{imageId} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	imageID, err := parseIDParam(c, "imageId")
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	if err := h.galleryService.DeleteImage(c.Request.Context(), imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
