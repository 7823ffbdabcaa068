package storage

import "context"

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

// BlobStorage is the keyed artifact store holding original uploads and
// transformed variants.
type BlobStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
}
