package ports

import (
	"context"
	"time"
)

// ViewEventInput is a single playback event to be counted.
type ViewEventInput struct {
	VideoID   string
	ViewerID  string
	Timestamp time.Time
}

// ViewService processes view events: deduplicates repeated views from the
// same viewer and applies the counter update.
type ViewService interface {
	Process(ctx context.Context, in ViewEventInput) error
}
