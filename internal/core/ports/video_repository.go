package ports

import (
	"context"

	"github.com/videotube/backend/internal/core/domain"
)

// ListVideosFilter carries all query parameters for listing videos.
type ListVideosFilter struct {
	OwnerID       string // optional: restrict to one owner
	Search        string // optional: partial match on title or description
	PublishedOnly bool   // true for public listings
	Page          int    // 1-based
	Limit         int    // rows per page (capped by the service)
}

// VideoRepository defines persistence operations for video metadata.
type VideoRepository interface {
	Create(ctx context.Context, v *domain.Video) (*domain.Video, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	// List returns a page of videos matching filter plus the total count.
	List(ctx context.Context, filter ListVideosFilter) ([]*domain.Video, int64, error)
	// IncrementViews atomically adds delta to the view counter.
	IncrementViews(ctx context.Context, id string, delta int64) error
	SetPublished(ctx context.Context, id string, published bool) error
}
