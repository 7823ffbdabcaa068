package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pixelvault/pixelvault/internal/adapter/handler"
	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/mocks"
	"github.com/pixelvault/pixelvault/internal/pipeline"
	"github.com/pixelvault/pixelvault/internal/usecase/media"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newMediaRouter(t *testing.T) (*gin.Engine, *mocks.MockMediaService, uuid.UUID) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mediaSvc := mocks.NewMockMediaService(ctrl)
	h := handler.NewMediaHandler(mediaSvc)

	userID := uuid.New()
	router := setupRouter()
	identify := func(c *gin.Context) {
		c.Set("user_id", userID)
	}
	router.POST("/resources/:id/transform", identify, h.Transform)
	router.POST("/resources/:id/preview", identify, h.Preview)
	router.GET("/resources/:id/content", identify, h.Retrieve)

	return router, mediaSvc, userID
}

const transformBody = `{"transformations":{"resize":{"width":100,"height":100,"fit":"cover"}}}`

func TestMediaHandler_Transform(t *testing.T) {
	t.Run("returns 201 for a freshly executed variant", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			TransformAndSave(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(&media.TransformResult{
				ResourceID: resourceID,
				Cached:     false,
				Variant:    entity.Variant{Hash: "abc123", Format: "jpeg", Width: 100, Height: 100},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/resources/"+resourceID.String()+"/transform", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["cached"])
	})

	t.Run("returns 200 for a cache hit", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			TransformAndSave(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(&media.TransformResult{
				ResourceID: resourceID,
				Cached:     true,
				Variant:    entity.Variant{Hash: "abc123", Format: "jpeg"},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/resources/"+resourceID.String()+"/transform", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("maps rate limiting to 429", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			TransformAndSave(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(nil, domain.ErrRateLimited)

		req := httptest.NewRequest(http.MethodPost, "/resources/"+resourceID.String()+"/transform", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("maps a saturated pipeline to 503", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			TransformAndSave(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(nil, domain.ErrPipelineBusy)

		req := httptest.NewRequest(http.MethodPost, "/resources/"+resourceID.String()+"/transform", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("maps stage failures to 422", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			TransformAndSave(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(nil, &pipeline.Error{Stage: "crop", Err: assert.AnError})

		req := httptest.NewRequest(http.MethodPost, "/resources/"+resourceID.String()+"/transform", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects an invalid resource id", func(t *testing.T) {
		router, _, _ := newMediaRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/resources/not-a-uuid/transform", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMediaHandler_Preview(t *testing.T) {
	t.Run("streams the transformed bytes", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()
		payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}

		mediaSvc.EXPECT().
			TransformPreview(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(&media.Content{Data: payload, ContentType: "image/jpeg", FileName: "photo-abc123.jpeg"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/resources/"+resourceID.String()+"/preview", bytes.NewBufferString(transformBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "photo-abc123.jpeg")
		assert.Equal(t, payload, w.Body.Bytes())
	})
}

func TestMediaHandler_Retrieve(t *testing.T) {
	t.Run("passes variant and format selectors through", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			Retrieve(gomock.Any(), userID, resourceID, media.RetrieveInput{VariantHash: "abc123", OutputFormat: "png"}).
			Return(&media.Content{Data: []byte{1}, ContentType: "image/png", FileName: "photo-abc123.png"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/resources/"+resourceID.String()+"/content?variant=abc123&format=png", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("maps a missing variant to 404", func(t *testing.T) {
		router, mediaSvc, userID := newMediaRouter(t)
		resourceID := uuid.New()

		mediaSvc.EXPECT().
			Retrieve(gomock.Any(), userID, resourceID, gomock.Any()).
			Return(nil, domain.ErrVariantNotFound)

		req := httptest.NewRequest(http.MethodGet, "/resources/"+resourceID.String()+"/content?variant=missing", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
