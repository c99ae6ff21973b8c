package ports

import (
	"context"

	"github.com/videotube/backend/internal/core/domain"
)

// CreateVideoInput carries the upload form for a new video.
type CreateVideoInput struct {
	Title           string
	Description     string
	DurationSeconds float64
	VideoFile       *MediaFile
	Thumbnail       *MediaFile
	OwnerID         string
}

// ListVideosInput carries the public listing parameters.
type ListVideosInput struct {
	Search  string
	OwnerID string
	Page    int
	Limit   int
}

// ListVideosResult is a page of videos plus pagination metadata.
type ListVideosResult struct {
	Items      []*domain.Video
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// VideoService defines use-case operations for video metadata.
type VideoService interface {
	Create(ctx context.Context, input CreateVideoInput) (*domain.Video, error)
	// Get returns the video and records a view for viewerID. Unpublished
	// videos are only visible to their owner.
	Get(ctx context.Context, id, viewerID string) (*domain.Video, error)
	List(ctx context.Context, input ListVideosInput) (*ListVideosResult, error)
	TogglePublish(ctx context.Context, id, ownerID string) (*domain.Video, error)
}
