package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/adapter/handler/dto/response"
	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/pkg/httputil"
	"github.com/pixelvault/pixelvault/internal/usecase/resource"
)

const maxUploadSize = 25 << 20 // 25MB

type ResourceHandler struct {
	resourceSvc ResourceService
}

func NewResourceHandler(resourceSvc ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceSvc: resourceSvc}
}

func (h *ResourceHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_FILE", "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_FILE", "could not read file")
		return
	}

	userID := httputil.GetUserID(c)

	res, err := h.resourceSvc.Upload(c.Request.Context(), resource.UploadInput{
		OwnerID:  userID,
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFormat):
			httputil.ErrorWithCode(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "file is not a supported image format")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.Created(c, response.ResourceFromEntity(res))
}

func (h *ResourceHandler) Get(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid resource id")
		return
	}

	userID := httputil.GetUserID(c)

	res, err := h.resourceSvc.Get(c.Request.Context(), userID, resourceID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.OK(c, response.ResourceFromEntity(res))
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid resource id")
		return
	}

	userID := httputil.GetUserID(c)

	if err := h.resourceSvc.Delete(c.Request.Context(), userID, resourceID); err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.NoContent(c)
}
