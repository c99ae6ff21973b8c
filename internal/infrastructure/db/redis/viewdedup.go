package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewTTL = time.Hour

// ViewDedup provides view-count idempotency checks backed by Redis.
// Key format: view:<video_id>:<viewer_id> — repeated views by the same viewer
// within viewTTL count once.
type ViewDedup struct {
	client *redis.Client
}

// NewViewDedup creates a ViewDedup wrapping the given Redis client.
func NewViewDedup(client *redis.Client) *ViewDedup {
	return &ViewDedup{client: client}
}

// IsDuplicate reports whether this viewer's view was already counted recently.
func (d *ViewDedup) IsDuplicate(ctx context.Context, videoID, viewerID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(videoID, viewerID)).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this view has been counted (expires after viewTTL).
func (d *ViewDedup) Mark(ctx context.Context, videoID, viewerID string) error {
	return d.client.Set(ctx, d.key(videoID, viewerID), "1", viewTTL).Err()
}

func (d *ViewDedup) key(videoID, viewerID string) string {
	return fmt.Sprintf("view:%s:%s", videoID, viewerID)
}
