package media

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pixelvault/pixelvault/internal/adapter/repository"
	"github.com/pixelvault/pixelvault/internal/adapter/storage"
	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
	"github.com/pixelvault/pixelvault/internal/pipeline"
	"github.com/pixelvault/pixelvault/internal/ratelimit"
)

// Service runs transformation requests against the variant cache: a
// request is normalized and hashed, served from the cache on a hit, and
// otherwise executed on the pipeline pool and committed. Commits upload
// artifact bytes before appending metadata, so an interrupted commit can
// only leave an orphaned upload, never metadata referencing a missing
// artifact.
type Service struct {
	resources repository.ResourceRepository
	blobs     storage.BlobStorage
	pool      *pipeline.Pool
	limiter   ratelimit.Limiter
	logger    *zap.Logger
}

func NewService(
	resources repository.ResourceRepository,
	blobs storage.BlobStorage,
	pool *pipeline.Pool,
	limiter ratelimit.Limiter,
	logger *zap.Logger,
) *Service {
	return &Service{
		resources: resources,
		blobs:     blobs,
		pool:      pool,
		limiter:   limiter,
		logger:    logger,
	}
}

type TransformResult struct {
	ResourceID uuid.UUID
	Cached     bool
	Variant    entity.Variant
}

type Content struct {
	Data        []byte
	ContentType string
	FileName    string
}

type RetrieveInput struct {
	VariantHash  string
	OutputFormat string
}

// TransformAndSave produces the variant for the given spec, executing
// the pipeline only on a cache miss. Concurrent identical requests may
// both execute; the idempotent append guarantees a single stored entry
// per hash.
func (s *Service) TransformAndSave(ctx context.Context, userID, resourceID uuid.UUID, spec transform.Spec) (*TransformResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	hash, err := spec.Hash()
	if err != nil {
		return nil, err
	}

	resource, err := s.resources.GetOwned(ctx, resourceID, userID)
	if err != nil {
		return nil, err
	}

	if variant, ok := resource.Variant(hash); ok {
		return &TransformResult{ResourceID: resource.ID, Cached: true, Variant: *variant}, nil
	}

	if !s.limiter.Allow(ctx, ratelimit.Key(userID, resourceID)) {
		return nil, domain.ErrRateLimited
	}

	out, err := s.execute(ctx, resource, spec)
	if err != nil {
		return nil, err
	}

	key := variantKey(resource.ID, hash, out.Format)
	variant := entity.NewVariant(hash, key, out.ContentType, out.Format, int64(len(out.Data)), out.Width, out.Height, spec)

	if err := s.blobs.Put(ctx, key, out.Data, out.ContentType); err != nil {
		return nil, fmt.Errorf("uploading variant artifact: %w", err)
	}
	inserted, err := s.resources.AppendVariant(ctx, resource.ID, variant)
	if err != nil {
		return nil, fmt.Errorf("recording variant: %w", err)
	}
	if !inserted {
		// An identical request won the race. The artifact is
		// deterministic, so the stored entry matches what we produced.
		s.logger.Debug("variant append lost race to identical request",
			zap.String("resource_id", resource.ID.String()),
			zap.String("hash", hash),
		)
	}

	return &TransformResult{ResourceID: resource.ID, Cached: false, Variant: variant}, nil
}

// TransformPreview returns the transformed bytes without persisting
// anything. A cache hit is served from the stored artifact.
func (s *Service) TransformPreview(ctx context.Context, userID, resourceID uuid.UUID, spec transform.Spec) (*Content, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	hash, err := spec.Hash()
	if err != nil {
		return nil, err
	}

	resource, err := s.resources.GetOwned(ctx, resourceID, userID)
	if err != nil {
		return nil, err
	}

	if variant, ok := resource.Variant(hash); ok {
		data, err := s.blobs.Get(ctx, variant.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("fetching cached variant: %w", err)
		}
		return &Content{
			Data:        data,
			ContentType: variant.ContentType,
			FileName:    variantFileName(resource, hash, variant.Format),
		}, nil
	}

	if !s.limiter.Allow(ctx, ratelimit.Key(userID, resourceID)) {
		return nil, domain.ErrRateLimited
	}

	out, err := s.execute(ctx, resource, spec)
	if err != nil {
		return nil, err
	}

	return &Content{
		Data:        out.Data,
		ContentType: out.ContentType,
		FileName:    variantFileName(resource, hash, out.Format),
	}, nil
}

// Retrieve serves the original or a stored variant, optionally
// re-encoding to a requested output format without recording a new
// variant.
func (s *Service) Retrieve(ctx context.Context, userID, resourceID uuid.UUID, input RetrieveInput) (*Content, error) {
	if input.OutputFormat != "" && !transform.IsSupportedFormat(input.OutputFormat) {
		return nil, domain.ErrUnsupportedFormat
	}

	resource, err := s.resources.GetOwned(ctx, resourceID, userID)
	if err != nil {
		return nil, err
	}

	key := resource.StorageKey
	contentType := resource.ContentType
	format := resource.Format
	fileName := resource.FileName

	if input.VariantHash != "" {
		variant, ok := resource.Variant(input.VariantHash)
		if !ok {
			return nil, domain.ErrVariantNotFound
		}
		key = variant.StorageKey
		contentType = variant.ContentType
		format = variant.Format
		fileName = variantFileName(resource, variant.Hash, variant.Format)
	}

	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetching artifact: %w", err)
	}

	if input.OutputFormat != "" && input.OutputFormat != format {
		out, err := s.pool.Process(ctx, pipeline.Job{
			Source:         data,
			Spec:           transform.Spec{Format: input.OutputFormat},
			FallbackFormat: format,
		})
		if err != nil {
			return nil, err
		}
		data = out.Data
		contentType = out.ContentType
		fileName = replaceExtension(fileName, out.Format)
	}

	return &Content{Data: data, ContentType: contentType, FileName: fileName}, nil
}

func (s *Service) execute(ctx context.Context, resource *entity.Resource, spec transform.Spec) (*pipeline.Result, error) {
	src, err := s.blobs.Get(ctx, resource.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("fetching source artifact: %w", err)
	}
	return s.pool.Process(ctx, pipeline.Job{
		Source:         src,
		Spec:           spec,
		FallbackFormat: resource.Format,
	})
}

func variantKey(resourceID uuid.UUID, hash, format string) string {
	return fmt.Sprintf("resources/%s/variants/%s.%s", resourceID, hash, format)
}

func variantFileName(resource *entity.Resource, hash, format string) string {
	base := strings.TrimSuffix(resource.FileName, path.Ext(resource.FileName))
	if base == "" {
		base = resource.ID.String()
	}
	return fmt.Sprintf("%s-%s.%s", base, hash, format)
}

func replaceExtension(fileName, format string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName)) + "." + format
}
