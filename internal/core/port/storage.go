package port

import (
	"context"
	"io"
)

// ObjectStore persists uploaded files (book covers, blog images) and
// returns a public URL for each stored object.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
}
