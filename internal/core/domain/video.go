package domain

import (
	"errors"
	"time"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrForbidden     = errors.New("access forbidden")
)

// Video is the metadata record for an uploaded video. The file itself lives
// on the media host; only durable URLs are stored here.
type Video struct {
	ID              string    `json:"id"`
	VideoFileURL    string    `json:"videoFile"`
	ThumbnailURL    string    `json:"thumbnail"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationSeconds float64   `json:"duration"`
	ViewCount       int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	OwnerID         string    `json:"owner"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
