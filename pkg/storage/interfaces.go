package storage

import "io"

type ObjectStorage interface {
	Upload(key string, reader io.Reader, size int64, contentType string) error
	Delete(key string) error
	PublicURL(key string) string
}
