package ports

import (
	"context"
	"io"
)

// MediaFile is an uploaded file handed from the transport layer to a service.
type MediaFile struct {
	Name    string
	Content io.Reader
}

// MediaStorage uploads content to the external media host and returns a
// durable URL. A nil error with an empty URL must be treated as a failure by
// callers.
type MediaStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
