package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
	"github.com/pixelvault/pixelvault/internal/usecase/media"
	"github.com/pixelvault/pixelvault/internal/usecase/resource"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type ResourceService interface {
	Upload(ctx context.Context, input resource.UploadInput) (*entity.Resource, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.Resource, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type MediaService interface {
	TransformAndSave(ctx context.Context, userID, resourceID uuid.UUID, spec transform.Spec) (*media.TransformResult, error)
	TransformPreview(ctx context.Context, userID, resourceID uuid.UUID, spec transform.Spec) (*media.Content, error)
	Retrieve(ctx context.Context, userID, resourceID uuid.UUID, input media.RetrieveInput) (*media.Content, error)
}
