package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/videotube/backend/internal/api/metrics"
	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

// uploadMedia pushes a file to the media host under a random key with the
// given prefix and returns the durable URL. Any failure, including a
// successful call that yields no usable URL, is reported as ErrMediaUpload so
// callers can abort before persisting anything.
func uploadMedia(ctx context.Context, store ports.MediaStorage, prefix string, f ports.MediaFile) (string, error) {
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), strings.ToLower(filepath.Ext(f.Name)))

	timer := prometheus.NewTimer(metrics.MediaUploadDuration.WithLabelValues(prefix))
	defer timer.ObserveDuration()

	url, err := store.Save(ctx, key, f.Content)
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues(prefix, "error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
	}
	if url == "" {
		metrics.MediaUploadsTotal.WithLabelValues(prefix, "error").Inc()
		return "", fmt.Errorf("%w: media host returned no url", domain.ErrMediaUpload)
	}

	metrics.MediaUploadsTotal.WithLabelValues(prefix, "ok").Inc()
	return url, nil
}
