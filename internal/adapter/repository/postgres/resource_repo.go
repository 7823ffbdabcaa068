package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

type ResourceRepo struct {
	pool *pgxpool.Pool
}

func NewResourceRepo(pool *pgxpool.Pool) *ResourceRepo {
	return &ResourceRepo{pool: pool}
}

func (r *ResourceRepo) Create(ctx context.Context, resource *entity.Resource) error {
	query := `
		INSERT INTO resources (id, owner_id, file_name, storage_key, format, content_type, size, width, height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		resource.ID, resource.OwnerID, resource.FileName, resource.StorageKey,
		resource.Format, resource.ContentType, resource.Size, resource.Width, resource.Height,
		resource.CreatedAt, resource.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *ResourceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *ResourceRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Resource, error) {
	return r.get(ctx, `WHERE id = $1 AND owner_id = $2`, id, ownerID)
}

func (r *ResourceRepo) get(ctx context.Context, where string, args ...any) (*entity.Resource, error) {
	query := `
		SELECT id, owner_id, file_name, storage_key, format, content_type, size, width, height, created_at, updated_at
		FROM resources ` + where

	var resource entity.Resource
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&resource.ID, &resource.OwnerID, &resource.FileName, &resource.StorageKey,
		&resource.Format, &resource.ContentType, &resource.Size, &resource.Width, &resource.Height,
		&resource.CreatedAt, &resource.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("querying resource: %w", err)
	}

	variants, err := r.loadVariants(ctx, resource.ID)
	if err != nil {
		return nil, err
	}
	resource.Variants = variants

	return &resource, nil
}

func (r *ResourceRepo) loadVariants(ctx context.Context, resourceID uuid.UUID) ([]entity.Variant, error) {
	query := `
		SELECT hash, storage_key, content_type, format, size, width, height, transformations, created_at
		FROM variants
		WHERE resource_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	defer rows.Close()

	var variants []entity.Variant
	for rows.Next() {
		var (
			variant entity.Variant
			rawSpec []byte
		)
		if err := rows.Scan(
			&variant.Hash, &variant.StorageKey, &variant.ContentType, &variant.Format,
			&variant.Size, &variant.Width, &variant.Height, &rawSpec, &variant.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		var spec transform.Spec
		if err := json.Unmarshal(rawSpec, &spec); err != nil {
			return nil, fmt.Errorf("decoding variant transformations: %w", err)
		}
		variant.Transformations = spec
		variants = append(variants, variant)
	}

	return variants, rows.Err()
}

func (r *ResourceRepo) AppendVariant(ctx context.Context, resourceID uuid.UUID, variant entity.Variant) (bool, error) {
	spec, err := variant.Transformations.Canonical()
	if err != nil {
		return false, fmt.Errorf("encoding variant transformations: %w", err)
	}

	// ON CONFLICT DO NOTHING keeps the append idempotent when two
	// identical requests race: the first insert wins, the second reads
	// back as a cache hit.
	query := `
		INSERT INTO variants (resource_id, hash, storage_key, content_type, format, size, width, height, transformations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (resource_id, hash) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query,
		resourceID, variant.Hash, variant.StorageKey, variant.ContentType, variant.Format,
		variant.Size, variant.Width, variant.Height, spec, variant.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("inserting variant: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ResourceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Variants go with the resource via ON DELETE CASCADE.
	result, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}
