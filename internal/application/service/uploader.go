package service

import (
	"context"
	"io"
)

// Uploader is the image-hosting collaborator. Upload returns the public URL
// of the stored asset.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
