package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/domain/entity"
	"github.com/pixelvault/pixelvault/internal/usecase/media"
)

type ResourceResponse struct {
	ID          uuid.UUID         `json:"id"`
	FileName    string            `json:"file_name"`
	Format      string            `json:"format"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
}

type VariantResponse struct {
	Hash        string    `json:"hash"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CreatedAt   time.Time `json:"created_at"`
}

type TransformResponse struct {
	ResourceID uuid.UUID       `json:"resource_id"`
	Cached     bool            `json:"cached"`
	Variant    VariantResponse `json:"variant"`
}

func ResourceFromEntity(resource *entity.Resource) ResourceResponse {
	variants := make([]VariantResponse, 0, len(resource.Variants))
	for i := range resource.Variants {
		variants = append(variants, VariantFromEntity(&resource.Variants[i]))
	}

	return ResourceResponse{
		ID:          resource.ID,
		FileName:    resource.FileName,
		Format:      resource.Format,
		ContentType: resource.ContentType,
		Size:        resource.Size,
		Width:       resource.Width,
		Height:      resource.Height,
		Variants:    variants,
		CreatedAt:   resource.CreatedAt,
	}
}

func VariantFromEntity(variant *entity.Variant) VariantResponse {
	return VariantResponse{
		Hash:        variant.Hash,
		Format:      variant.Format,
		ContentType: variant.ContentType,
		Size:        variant.Size,
		Width:       variant.Width,
		Height:      variant.Height,
		CreatedAt:   variant.CreatedAt,
	}
}

func TransformResultToResponse(result *media.TransformResult) TransformResponse {
	return TransformResponse{
		ResourceID: result.ResourceID,
		Cached:     result.Cached,
		Variant:    VariantFromEntity(&result.Variant),
	}
}
