package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/adapter/handler/dto/request"
	"github.com/pixelvault/pixelvault/internal/adapter/handler/dto/response"
	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
	"github.com/pixelvault/pixelvault/internal/pipeline"
	"github.com/pixelvault/pixelvault/internal/pkg/httputil"
	"github.com/pixelvault/pixelvault/internal/usecase/media"
)

type MediaHandler struct {
	mediaSvc MediaService
}

func NewMediaHandler(mediaSvc MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Transform executes the requested transformation and commits the result
// as a cached variant of the resource.
func (h *MediaHandler) Transform(c *gin.Context) {
	resourceID, userID, req, ok := h.bindTransform(c)
	if !ok {
		return
	}

	result, err := h.mediaSvc.TransformAndSave(c.Request.Context(), userID, resourceID, req.Transformations)
	if err != nil {
		handleMediaError(c, err)
		return
	}

	if result.Cached {
		httputil.OK(c, response.TransformResultToResponse(result))
		return
	}
	httputil.Created(c, response.TransformResultToResponse(result))
}

// Preview executes the requested transformation and streams the bytes
// back without committing anything.
func (h *MediaHandler) Preview(c *gin.Context) {
	resourceID, userID, req, ok := h.bindTransform(c)
	if !ok {
		return
	}

	content, err := h.mediaSvc.TransformPreview(c.Request.Context(), userID, resourceID, req.Transformations)
	if err != nil {
		handleMediaError(c, err)
		return
	}

	serveContent(c, content)
}

// Retrieve streams the original or a stored variant, optionally
// re-encoded into another format.
func (h *MediaHandler) Retrieve(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid resource id")
		return
	}

	userID := httputil.GetUserID(c)

	content, err := h.mediaSvc.Retrieve(c.Request.Context(), userID, resourceID, media.RetrieveInput{
		VariantHash:  c.Query("variant"),
		OutputFormat: c.Query("format"),
	})
	if err != nil {
		handleMediaError(c, err)
		return
	}

	serveContent(c, content)
}

func (h *MediaHandler) bindTransform(c *gin.Context) (uuid.UUID, uuid.UUID, request.TransformRequest, bool) {
	var req request.TransformRequest

	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid resource id")
		return uuid.Nil, uuid.Nil, req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return uuid.Nil, uuid.Nil, req, false
	}

	return resourceID, httputil.GetUserID(c), req, true
}

func serveContent(c *gin.Context, content *media.Content) {
	c.Header("Content-Disposition", `inline; filename="`+content.FileName+`"`)
	c.Data(http.StatusOK, content.ContentType, content.Data)
}

func handleMediaError(c *gin.Context, err error) {
	var (
		invalidSpec *transform.InvalidSpecError
		stageErr    *pipeline.Error
	)

	switch {
	case errors.Is(err, domain.ErrResourceNotFound):
		httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, domain.ErrVariantNotFound):
		httputil.ErrorWithCode(c, http.StatusNotFound, "VARIANT_NOT_FOUND", "variant not found")
	case errors.Is(err, domain.ErrRateLimited):
		c.Header("Retry-After", "60")
		httputil.ErrorWithCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many transformation requests, please try again later")
	case errors.Is(err, domain.ErrPipelineBusy):
		httputil.ErrorWithCode(c, http.StatusServiceUnavailable, "PIPELINE_BUSY", "transformation pipeline is saturated, please retry")
	case errors.Is(err, domain.ErrUnsupportedFormat):
		httputil.ErrorWithCode(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "requested format is not supported")
	case errors.As(err, &invalidSpec):
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_SPEC", invalidSpec.Error())
	case errors.As(err, &stageErr):
		httputil.ErrorWithCode(c, http.StatusUnprocessableEntity, "TRANSFORM_FAILED", stageErr.Error())
	default:
		httputil.InternalError(c)
	}
}
