package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/pixelvault/pixelvault/internal/adapter/repository/memory"
	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
	"github.com/pixelvault/pixelvault/internal/mocks"
	"github.com/pixelvault/pixelvault/internal/pipeline"
	"github.com/pixelvault/pixelvault/internal/ratelimit"
	"github.com/pixelvault/pixelvault/internal/usecase/media"
	memstorage "github.com/pixelvault/pixelvault/internal/infrastructure/storage"
)

type fixture struct {
	svc     *media.Service
	repo    *memory.ResourceRepo
	blobs   *memstorage.MemoryStorage
	pool    *pipeline.Pool
	ownerID uuid.UUID
}

func newFixture(t *testing.T, maxRequests int) *fixture {
	t.Helper()

	renderer, err := pipeline.NewFreetypeRenderer()
	require.NoError(t, err)

	repo := memory.NewResourceRepo()
	blobs := memstorage.NewMemoryStorage()
	pool := pipeline.NewPool(pipeline.NewExecutor(renderer), 2, 8, zap.NewNop())
	t.Cleanup(pool.Close)

	limiter := ratelimit.NewSlidingWindow(time.Minute, maxRequests)

	return &fixture{
		svc:     media.NewService(repo, blobs, pool, limiter, zap.NewNop()),
		repo:    repo,
		blobs:   blobs,
		pool:    pool,
		ownerID: uuid.New(),
	}
}

func (f *fixture) seedResource(t *testing.T) *entity.Resource {
	t.Helper()

	data := testJPEG(t, 400, 300)
	resource := entity.NewResource(f.ownerID, "photo.jpg", "jpeg", "image/jpeg", int64(len(data)), 400, 300)
	resource.StorageKey = "resources/" + resource.ID.String() + "/original.jpeg"

	require.NoError(t, f.blobs.Put(context.Background(), resource.StorageKey, data, resource.ContentType))
	require.NoError(t, f.repo.Create(context.Background(), resource))
	return resource
}

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func resizeSpec(width, height int) transform.Spec {
	return transform.Spec{Resize: &transform.Resize{Width: width, Height: height, Fit: "cover"}}
}

func TestService_TransformAndSave(t *testing.T) {
	ctx := context.Background()

	t.Run("executes on miss and serves from cache on repeat", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)
		spec := resizeSpec(100, 100)

		first, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, spec)
		require.NoError(t, err)
		assert.False(t, first.Cached)
		assert.Equal(t, 100, first.Variant.Width)
		assert.Equal(t, 100, first.Variant.Height)
		assert.Equal(t, "jpeg", first.Variant.Format)

		stored, err := f.blobs.Get(ctx, first.Variant.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, first.Variant.Size, int64(len(stored)))

		second, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, spec)
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.Equal(t, first.Variant.Hash, second.Variant.Hash)
		assert.Equal(t, first.Variant.StorageKey, second.Variant.StorageKey)

		// Original plus exactly one variant artifact.
		assert.Equal(t, 2, f.blobs.Len())
	})

	t.Run("rejects an empty spec", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		_, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, transform.Spec{})

		var invalid *transform.InvalidSpecError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "transformations", invalid.Field)
	})

	t.Run("hides resources owned by someone else", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		_, err := f.svc.TransformAndSave(ctx, uuid.New(), resource.ID, resizeSpec(50, 50))
		assert.ErrorIs(t, err, domain.ErrResourceNotFound)
	})

	t.Run("rate limits fresh executions but not cache hits", func(t *testing.T) {
		f := newFixture(t, 1)
		resource := f.seedResource(t)
		spec := resizeSpec(120, 80)

		_, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, spec)
		require.NoError(t, err)

		_, err = f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, resizeSpec(60, 40))
		assert.ErrorIs(t, err, domain.ErrRateLimited)

		// The cached variant stays reachable while the key is saturated.
		result, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, spec)
		require.NoError(t, err)
		assert.True(t, result.Cached)
	})

	t.Run("surfaces pipeline stage failures", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		_, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, transform.Spec{
			Crop: &transform.Crop{Width: 10_000, Height: 10_000, X: 0, Y: 0},
		})

		var stageErr *pipeline.Error
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, "crop", stageErr.Stage)
	})
}

func TestService_TransformAndSave_CommitOrdering(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	newMockedService := func(t *testing.T) (*media.Service, *mocks.MockResourceRepository, *mocks.MockBlobStorage) {
		t.Helper()
		ctrl := gomock.NewController(t)

		renderer, err := pipeline.NewFreetypeRenderer()
		require.NoError(t, err)
		pool := pipeline.NewPool(pipeline.NewExecutor(renderer), 1, 4, zap.NewNop())
		t.Cleanup(pool.Close)

		repo := mocks.NewMockResourceRepository(ctrl)
		blobs := mocks.NewMockBlobStorage(ctrl)
		svc := media.NewService(repo, blobs, pool, ratelimit.NewSlidingWindow(time.Minute, 20), zap.NewNop())
		return svc, repo, blobs
	}

	seed := func() *entity.Resource {
		resource := entity.NewResource(ownerID, "photo.jpg", "jpeg", "image/jpeg", 0, 400, 300)
		resource.StorageKey = "resources/" + resource.ID.String() + "/original.jpeg"
		return resource
	}

	t.Run("does not record metadata when the artifact upload fails", func(t *testing.T) {
		svc, repo, blobs := newMockedService(t)
		resource := seed()
		src := testJPEG(t, 400, 300)

		repo.EXPECT().GetOwned(ctx, resource.ID, ownerID).Return(resource, nil)
		blobs.EXPECT().Get(ctx, resource.StorageKey).Return(src, nil)
		blobs.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), "image/jpeg").Return(errors.New("bucket unavailable"))
		// No AppendVariant expectation: a failed upload must not commit.

		_, err := svc.TransformAndSave(ctx, ownerID, resource.ID, resizeSpec(100, 100))
		require.ErrorContains(t, err, "uploading variant artifact")
	})

	t.Run("losing the append race still reports success", func(t *testing.T) {
		svc, repo, blobs := newMockedService(t)
		resource := seed()
		src := testJPEG(t, 400, 300)

		repo.EXPECT().GetOwned(ctx, resource.ID, ownerID).Return(resource, nil)
		blobs.EXPECT().Get(ctx, resource.StorageKey).Return(src, nil)
		blobs.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), "image/jpeg").Return(nil)
		repo.EXPECT().AppendVariant(ctx, resource.ID, gomock.Any()).Return(false, nil)

		result, err := svc.TransformAndSave(ctx, ownerID, resource.ID, resizeSpec(100, 100))
		require.NoError(t, err)
		assert.False(t, result.Cached)
	})
}

func TestService_TransformPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("returns transformed bytes without persisting", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		content, err := f.svc.TransformPreview(ctx, f.ownerID, resource.ID, resizeSpec(100, 100))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", content.ContentType)
		assert.NotEmpty(t, content.Data)
		assert.Contains(t, content.FileName, "photo-")

		// Only the original remains stored, and no variant was recorded.
		assert.Equal(t, 1, f.blobs.Len())
		reloaded, err := f.repo.GetByID(ctx, resource.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Variants)
	})

	t.Run("serves a cached variant from storage", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)
		spec := resizeSpec(100, 100)

		saved, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, spec)
		require.NoError(t, err)

		content, err := f.svc.TransformPreview(ctx, f.ownerID, resource.ID, spec)
		require.NoError(t, err)

		stored, err := f.blobs.Get(ctx, saved.Variant.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, stored, content.Data)
	})
}

func TestService_Retrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("serves the original", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		content, err := f.svc.Retrieve(ctx, f.ownerID, resource.ID, media.RetrieveInput{})
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", content.ContentType)
		assert.Equal(t, "photo.jpg", content.FileName)
		assert.Equal(t, resource.Size, int64(len(content.Data)))
	})

	t.Run("serves a stored variant by hash", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		saved, err := f.svc.TransformAndSave(ctx, f.ownerID, resource.ID, resizeSpec(100, 100))
		require.NoError(t, err)

		content, err := f.svc.Retrieve(ctx, f.ownerID, resource.ID, media.RetrieveInput{
			VariantHash: saved.Variant.Hash,
		})
		require.NoError(t, err)
		assert.Equal(t, saved.Variant.Size, int64(len(content.Data)))
		assert.Contains(t, content.FileName, saved.Variant.Hash)
	})

	t.Run("reports a missing variant hash", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		_, err := f.svc.Retrieve(ctx, f.ownerID, resource.ID, media.RetrieveInput{
			VariantHash: "0123456789abcdef01234567",
		})
		assert.ErrorIs(t, err, domain.ErrVariantNotFound)
	})

	t.Run("re-encodes on the fly without recording a variant", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		content, err := f.svc.Retrieve(ctx, f.ownerID, resource.ID, media.RetrieveInput{
			OutputFormat: "png",
		})
		require.NoError(t, err)
		assert.Equal(t, "image/png", content.ContentType)
		assert.Equal(t, "photo.png", content.FileName)

		reloaded, err := f.repo.GetByID(ctx, resource.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Variants)
	})

	t.Run("rejects an unknown output format", func(t *testing.T) {
		f := newFixture(t, 20)
		resource := f.seedResource(t)

		_, err := f.svc.Retrieve(ctx, f.ownerID, resource.ID, media.RetrieveInput{
			OutputFormat: "gif",
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})
}
