package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ViewDispatcher is the interface the video service uses to hand off view
// events for asynchronous counting.
type ViewDispatcher interface {
	Enqueue(event ports.ViewEventInput)
}

// VideoService implements video metadata use cases.
type VideoService struct {
	repo  ports.VideoRepository
	media ports.MediaStorage
	views ViewDispatcher
	log   zerolog.Logger
}

func NewVideoService(repo ports.VideoRepository, media ports.MediaStorage, views ViewDispatcher, log zerolog.Logger) *VideoService {
	return &VideoService{repo: repo, media: media, views: views, log: log}
}

// Create uploads the video file and thumbnail, then persists the metadata.
// Uploads come first so a media failure leaves no orphaned record.
func (s *VideoService) Create(ctx context.Context, input ports.CreateVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if input.DurationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	if input.VideoFile == nil || input.Thumbnail == nil {
		return nil, fmt.Errorf("%w: video file and thumbnail are required", domain.ErrValidation)
	}

	videoURL, err := uploadMedia(ctx, s.media, "videos", *input.VideoFile)
	if err != nil {
		return nil, err
	}
	thumbnailURL, err := uploadMedia(ctx, s.media, "thumbnails", *input.Thumbnail)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Video{
		VideoFileURL:    videoURL,
		ThumbnailURL:    thumbnailURL,
		Title:           title,
		Description:     description,
		DurationSeconds: input.DurationSeconds,
		IsPublished:     true,
		OwnerID:         input.OwnerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("video_id", created.ID).Str("owner_id", created.OwnerID).Msg("video created")
	return created, nil
}

// Get returns the video and enqueues a view event for the viewer. An
// unpublished video is visible only to its owner; everyone else gets the same
// not-found as a missing record.
func (s *VideoService) Get(ctx context.Context, id, viewerID string) (*domain.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, domain.ErrVideoNotFound
	}

	if s.views != nil && viewerID != "" {
		s.views.Enqueue(ports.ViewEventInput{
			VideoID:   video.ID,
			ViewerID:  viewerID,
			Timestamp: time.Now().UTC(),
		})
	}

	return video, nil
}

// List returns a page of published videos.
func (s *VideoService) List(ctx context.Context, input ports.ListVideosInput) (*ports.ListVideosResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListVideosFilter{
		OwnerID:       input.OwnerID,
		Search:        input.Search,
		PublishedOnly: true,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListVideosResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// TogglePublish flips the publish flag; only the owner may do so.
func (s *VideoService) TogglePublish(ctx context.Context, id, ownerID string) (*domain.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	if err := s.repo.SetPublished(ctx, id, !video.IsPublished); err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	return video, nil
}
