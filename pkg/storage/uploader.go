// Package storage hosts product images on an external object store and
// hands back publicly resolvable URLs.
package storage

import (
	"context"
	"io"
)

// Uploader stores one binary attachment and returns its hosted URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data io.Reader) (string, error)
}
