package entity

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	FileName    string
	StorageKey  string
	Format      string
	ContentType string
	Size        int64
	Width       int
	Height      int
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewResource(ownerID uuid.UUID, fileName, format, contentType string, size int64, width, height int) *Resource {
	now := time.Now().UTC()
	return &Resource{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		FileName:    fileName,
		Format:      format,
		ContentType: contentType,
		Size:        size,
		Width:       width,
		Height:      height,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Variant returns the stored variant for the given content hash, if any.
func (r *Resource) Variant(hash string) (*Variant, bool) {
	for i := range r.Variants {
		if r.Variants[i].Hash == hash {
			return &r.Variants[i], true
		}
	}
	return nil, false
}

// StorageKeys lists every blob key owned by the resource: the original
// plus all variant artifacts.
func (r *Resource) StorageKeys() []string {
	keys := make([]string, 0, len(r.Variants)+1)
	keys = append(keys, r.StorageKey)
	for i := range r.Variants {
		keys = append(keys, r.Variants[i].StorageKey)
	}
	return keys
}
