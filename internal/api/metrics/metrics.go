// Package metrics defines and registers all custom Prometheus metrics for the
// videotube API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto and are exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videotube"

// ── Session metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created user accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered users.",
	},
)

// LoginsTotal counts login attempts that reached password verification.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "rotated" (new pair issued) or "rejected" (verification failed)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// MediaUploadsTotal counts uploads to the media host.
// Labels:
//   - kind: object key prefix ("avatars", "covers", "videos", "thumbnails")
//   - result: "ok" or "error"
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of media host uploads, by kind and result.",
	},
	[]string{"kind", "result"},
)

// MediaUploadDuration measures how long a single media upload takes.
// Label:
//   - kind: object key prefix
var MediaUploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "media_upload_duration_seconds",
		Help:      "Duration of uploads to the media host.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// ViewsProcessedTotal counts view events that incremented a counter.
var ViewsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_processed_total",
		Help:      "Total number of view events applied to a video counter.",
	},
)

// ViewsDedupTotal counts deduplication decisions on view events.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new view, counted)
var ViewsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_dedup_total",
		Help:      "Total number of view deduplication checks, by result (hit/miss).",
	},
	[]string{"result"},
)

// ViewQueueDepth tracks the number of view events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
