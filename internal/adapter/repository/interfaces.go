package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	// GetOwned loads the resource with its variants, scoped to the
	// owner; a resource owned by someone else reads as not found.
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Resource, error)
	// AppendVariant inserts the variant unless one with the same hash is
	// already recorded for the resource. Returns false when an existing
	// entry won; the insert is idempotent under concurrent identical
	// requests.
	AppendVariant(ctx context.Context, resourceID uuid.UUID, variant entity.Variant) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
