package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/videotube/backend/internal/api/metrics"
	"github.com/videotube/backend/internal/core/ports"
)

// ViewDedup abstracts the idempotency store (Redis). Repeated views of the
// same video by the same viewer within the store's TTL count once.
type ViewDedup interface {
	IsDuplicate(ctx context.Context, videoID, viewerID string) (bool, error)
	Mark(ctx context.Context, videoID, viewerID string) error
}

type viewService struct {
	videos ports.VideoRepository
	dedup  ViewDedup
	log    zerolog.Logger
}

// NewViewService returns a ViewService implementation.
func NewViewService(videos ports.VideoRepository, dedup ViewDedup, log zerolog.Logger) ports.ViewService {
	return &viewService{videos: videos, dedup: dedup, log: log}
}

// Process deduplicates and counts a single view event. A dedup-store failure
// degrades to counting the view rather than dropping it.
func (s *viewService) Process(ctx context.Context, in ports.ViewEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.VideoID, in.ViewerID)
	if err != nil {
		s.log.Warn().Err(err).Str("video_id", in.VideoID).Msg("view dedup check failed, counting anyway")
	} else if isDup {
		metrics.ViewsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("video_id", in.VideoID).Str("viewer_id", in.ViewerID).Msg("duplicate view skipped")
		return nil
	}
	metrics.ViewsDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so a retried event is not double counted.
	if markErr := s.dedup.Mark(ctx, in.VideoID, in.ViewerID); markErr != nil {
		s.log.Warn().Err(markErr).Str("video_id", in.VideoID).Msg("failed to set view dedup key")
	}

	if err := s.videos.IncrementViews(ctx, in.VideoID, 1); err != nil {
		return fmt.Errorf("process view: %w", err)
	}

	metrics.ViewsProcessedTotal.Inc()
	s.log.Debug().Str("video_id", in.VideoID).Str("viewer_id", in.ViewerID).Msg("view counted")
	return nil
}
