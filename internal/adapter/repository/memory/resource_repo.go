package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/entity"
)

// ResourceRepo is an in-memory ResourceRepository used for local
// development and service-level tests.
type ResourceRepo struct {
	mu        sync.RWMutex
	resources map[uuid.UUID]*entity.Resource
}

func NewResourceRepo() *ResourceRepo {
	return &ResourceRepo{resources: make(map[uuid.UUID]*entity.Resource)}
}

func (r *ResourceRepo) Create(_ context.Context, resource *entity.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[resource.ID] = clone(resource)
	return nil
}

func (r *ResourceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resource, ok := r.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return clone(resource), nil
}

func (r *ResourceRepo) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*entity.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resource, ok := r.resources[id]
	if !ok || resource.OwnerID != ownerID {
		return nil, domain.ErrResourceNotFound
	}
	return clone(resource), nil
}

func (r *ResourceRepo) AppendVariant(_ context.Context, resourceID uuid.UUID, variant entity.Variant) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resource, ok := r.resources[resourceID]
	if !ok {
		return false, domain.ErrResourceNotFound
	}
	// Insert-if-absent: at most one variant per hash.
	if _, exists := resource.Variant(variant.Hash); exists {
		return false, nil
	}
	resource.Variants = append(resource.Variants, variant)
	return true, nil
}

func (r *ResourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(r.resources, id)
	return nil
}

func clone(resource *entity.Resource) *entity.Resource {
	copied := *resource
	copied.Variants = append([]entity.Variant(nil), resource.Variants...)
	return &copied
}
