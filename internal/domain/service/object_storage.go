package service

import "context"

// StoredObject describes an object written to storage.
type StoredObject struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ObjectStorage stores uploaded media and generated documents.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error)
	Delete(ctx context.Context, key string) error
}
