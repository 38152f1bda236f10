// Package filestore keeps user uploads (CVs and avatars) either on local disk or in an
// S3-compatible bucket.
package filestore

import (
	"context"
	"path"

	"github.com/google/uuid"
)

// Store persists an object and returns the URL it is served from.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// NewKey builds a collision-free object key such as "cv/42/6f1c...e2.pdf".
func NewKey(kind string, userID int64, ext string) string {
	return path.Join(kind, formatID(userID), uuid.NewString()+ext)
}
