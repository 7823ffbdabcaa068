package entity

import (
	"time"

	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

// Variant is an immutable transformed artifact derived from a resource's
// original, identified by the content hash of its transformation spec.
type Variant struct {
	Hash            string
	StorageKey      string
	ContentType     string
	Format          string
	Size            int64
	Width           int
	Height          int
	Transformations transform.Spec
	CreatedAt       time.Time
}

func NewVariant(hash, storageKey, contentType, format string, size int64, width, height int, spec transform.Spec) Variant {
	return Variant{
		Hash:            hash,
		StorageKey:      storageKey,
		ContentType:     contentType,
		Format:          format,
		Size:            size,
		Width:           width,
		Height:          height,
		Transformations: spec,
		CreatedAt:       time.Now().UTC(),
	}
}
