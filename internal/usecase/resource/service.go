package resource

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pixelvault/pixelvault/internal/adapter/repository"
	"github.com/pixelvault/pixelvault/internal/adapter/storage"
	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
	"github.com/pixelvault/pixelvault/internal/pipeline"
)

// Service manages the resource lifecycle: ingesting originals, looking
// them up, and removing them together with their stored variants.
type Service struct {
	resources repository.ResourceRepository
	blobs     storage.BlobStorage
	logger    *zap.Logger
}

func NewService(resources repository.ResourceRepository, blobs storage.BlobStorage, logger *zap.Logger) *Service {
	return &Service{resources: resources, blobs: blobs, logger: logger}
}

type UploadInput struct {
	OwnerID  uuid.UUID
	FileName string
	Data     []byte
}

// Upload probes the image, stores the original bytes, and records the
// resource. The blob lands before the metadata row; if the record fails
// the blob is removed so nothing is left behind.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*entity.Resource, error) {
	format, width, height, err := pipeline.Probe(input.Data)
	if err != nil {
		return nil, domain.ErrUnsupportedFormat
	}
	if !transform.IsSupportedFormat(format) {
		return nil, domain.ErrUnsupportedFormat
	}

	resource := entity.NewResource(
		input.OwnerID,
		input.FileName,
		format,
		pipeline.ContentType(format),
		int64(len(input.Data)),
		width,
		height,
	)
	resource.StorageKey = fmt.Sprintf("resources/%s/original.%s", resource.ID, format)

	if err := s.blobs.Put(ctx, resource.StorageKey, input.Data, resource.ContentType); err != nil {
		return nil, fmt.Errorf("uploading original: %w", err)
	}

	if err := s.resources.Create(ctx, resource); err != nil {
		if delErr := s.blobs.Delete(ctx, resource.StorageKey); delErr != nil {
			s.logger.Warn("orphaned original left after failed create",
				zap.String("storage_key", resource.StorageKey),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("creating resource record: %w", err)
	}

	return resource, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Resource, error) {
	return s.resources.GetOwned(ctx, id, userID)
}

// Delete removes the original, every variant artifact, and the resource
// record.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	resource, err := s.resources.GetOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.blobs.DeleteMany(ctx, resource.StorageKeys()); err != nil {
		return fmt.Errorf("deleting artifacts: %w", err)
	}

	return s.resources.Delete(ctx, resource.ID)
}
