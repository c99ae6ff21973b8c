package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

type stubVideoRepo struct {
	videos     map[string]*domain.Video
	seq        int
	lastFilter ports.ListVideosFilter
	listItems  []*domain.Video
	listTotal  int64
	increments map[string]int64
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{
		videos:     make(map[string]*domain.Video),
		increments: make(map[string]int64),
	}
}

func cloneVideo(v *domain.Video) *domain.Video {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func (r *stubVideoRepo) Create(_ context.Context, v *domain.Video) (*domain.Video, error) {
	r.seq++
	copy := cloneVideo(v)
	copy.ID = fmt.Sprintf("video-%d", r.seq)
	r.videos[copy.ID] = cloneVideo(copy)
	return copy, nil
}

func (r *stubVideoRepo) FindByID(_ context.Context, id string) (*domain.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	return cloneVideo(v), nil
}

func (r *stubVideoRepo) List(_ context.Context, filter ports.ListVideosFilter) ([]*domain.Video, int64, error) {
	r.lastFilter = filter
	return r.listItems, r.listTotal, nil
}

func (r *stubVideoRepo) IncrementViews(_ context.Context, id string, delta int64) error {
	if _, ok := r.videos[id]; !ok {
		return domain.ErrVideoNotFound
	}
	r.increments[id] += delta
	r.videos[id].ViewCount += delta
	return nil
}

func (r *stubVideoRepo) SetPublished(_ context.Context, id string, published bool) error {
	v, ok := r.videos[id]
	if !ok {
		return domain.ErrVideoNotFound
	}
	v.IsPublished = published
	return nil
}

type stubDispatcher struct {
	events []ports.ViewEventInput
}

func (d *stubDispatcher) Enqueue(event ports.ViewEventInput) {
	d.events = append(d.events, event)
}

func createVideoInput(owner string) ports.CreateVideoInput {
	return ports.CreateVideoInput{
		Title:           "First upload",
		Description:     "A short clip",
		DurationSeconds: 42.5,
		VideoFile:       mediaFile("clip.mp4"),
		Thumbnail:       mediaFile("thumb.jpg"),
		OwnerID:         owner,
	}
}

func newVideoService(repo *stubVideoRepo, media ports.MediaStorage, views ViewDispatcher) *VideoService {
	return NewVideoService(repo, media, views, zerolog.Nop())
}

func TestVideoService_Create(t *testing.T) {
	repo := newStubVideoRepo()
	media := &fakeMedia{}
	svc := newVideoService(repo, media, nil)

	video, err := svc.Create(context.Background(), createVideoInput("user-1"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if video.ID == "" {
		t.Fatalf("expected created video to have an id")
	}
	if !video.IsPublished {
		t.Fatalf("new videos start published")
	}
	if !strings.HasPrefix(video.VideoFileURL, "https://cdn.test/videos/") {
		t.Fatalf("unexpected video url %q", video.VideoFileURL)
	}
	if !strings.HasPrefix(video.ThumbnailURL, "https://cdn.test/thumbnails/") {
		t.Fatalf("unexpected thumbnail url %q", video.ThumbnailURL)
	}
	if len(media.saved) != 2 {
		t.Fatalf("expected two uploads, got %d", len(media.saved))
	}
}

func TestVideoService_Create_Validation(t *testing.T) {
	svc := newVideoService(newStubVideoRepo(), &fakeMedia{}, nil)

	cases := []struct {
		name   string
		mutate func(*ports.CreateVideoInput)
	}{
		{"missing title", func(in *ports.CreateVideoInput) { in.Title = "  " }},
		{"missing description", func(in *ports.CreateVideoInput) { in.Description = "" }},
		{"zero duration", func(in *ports.CreateVideoInput) { in.DurationSeconds = 0 }},
		{"negative duration", func(in *ports.CreateVideoInput) { in.DurationSeconds = -3 }},
		{"missing video file", func(in *ports.CreateVideoInput) { in.VideoFile = nil }},
		{"missing thumbnail", func(in *ports.CreateVideoInput) { in.Thumbnail = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := createVideoInput("user-1")
			tc.mutate(&input)
			if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestVideoService_Create_UploadFailure(t *testing.T) {
	repo := newStubVideoRepo()
	svc := newVideoService(repo, &fakeMedia{fail: true}, nil)

	if _, err := svc.Create(context.Background(), createVideoInput("user-1")); !errors.Is(err, domain.ErrMediaUpload) {
		t.Fatalf("expected ErrMediaUpload, got %v", err)
	}
	if len(repo.videos) != 0 {
		t.Fatalf("upload failure must abort before persistence")
	}
}

func TestVideoService_Get_EnqueuesView(t *testing.T) {
	repo := newStubVideoRepo()
	views := &stubDispatcher{}
	svc := newVideoService(repo, &fakeMedia{}, views)

	created, err := svc.Create(context.Background(), createVideoInput("user-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID, "viewer-9")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected video %s, got %s", created.ID, got.ID)
	}
	if len(views.events) != 1 {
		t.Fatalf("expected one enqueued view event, got %d", len(views.events))
	}
	if views.events[0].VideoID != created.ID || views.events[0].ViewerID != "viewer-9" {
		t.Fatalf("unexpected view event: %+v", views.events[0])
	}
}

func TestVideoService_Get_AnonymousViewerNotCounted(t *testing.T) {
	repo := newStubVideoRepo()
	views := &stubDispatcher{}
	svc := newVideoService(repo, &fakeMedia{}, views)

	created, err := svc.Create(context.Background(), createVideoInput("user-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID, ""); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(views.events) != 0 {
		t.Fatalf("viewer without identity must not enqueue a view")
	}
}

func TestVideoService_Get_UnpublishedHiddenFromOthers(t *testing.T) {
	repo := newStubVideoRepo()
	svc := newVideoService(repo, &fakeMedia{}, nil)

	created, err := svc.Create(context.Background(), createVideoInput("user-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.SetPublished(context.Background(), created.ID, false); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID, "someone-else"); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound for non-owner, got %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID, "user-1"); err != nil {
		t.Fatalf("owner must still see the unpublished video, got %v", err)
	}
}

func TestVideoService_Get_Missing(t *testing.T) {
	svc := newVideoService(newStubVideoRepo(), &fakeMedia{}, nil)

	if _, err := svc.Get(context.Background(), "nope", "viewer"); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestVideoService_List_Pagination(t *testing.T) {
	repo := newStubVideoRepo()
	repo.listItems = []*domain.Video{{ID: "video-11"}, {ID: "video-12"}}
	repo.listTotal = 25
	svc := newVideoService(repo, &fakeMedia{}, nil)

	result, err := svc.List(context.Background(), ports.ListVideosInput{
		Search: "cats",
		Page:   2,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 25 || result.Page != 2 || result.Limit != 10 {
		t.Fatalf("unexpected page metadata: %+v", result)
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 total pages for 25 rows at limit 10, got %d", result.TotalPages)
	}
	if !repo.lastFilter.PublishedOnly {
		t.Fatalf("public listing must be restricted to published videos")
	}
	if repo.lastFilter.Search != "cats" || repo.lastFilter.Page != 2 || repo.lastFilter.Limit != 10 {
		t.Fatalf("unexpected repository filter: %+v", repo.lastFilter)
	}
}

func TestVideoService_List_Defaults(t *testing.T) {
	repo := newStubVideoRepo()
	svc := newVideoService(repo, &fakeMedia{}, nil)

	result, err := svc.List(context.Background(), ports.ListVideosInput{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Page != 1 || result.Limit != defaultPageLimit {
		t.Fatalf("expected defaults page=1 limit=%d, got page=%d limit=%d", defaultPageLimit, result.Page, result.Limit)
	}

	result, err = svc.List(context.Background(), ports.ListVideosInput{Page: 1, Limit: 5000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, result.Limit)
	}
}

func TestVideoService_TogglePublish(t *testing.T) {
	repo := newStubVideoRepo()
	svc := newVideoService(repo, &fakeMedia{}, nil)

	created, err := svc.Create(context.Background(), createVideoInput("user-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	toggled, err := svc.TogglePublish(context.Background(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("TogglePublish returned error: %v", err)
	}
	if toggled.IsPublished {
		t.Fatalf("expected publish flag flipped to false")
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.IsPublished {
		t.Fatalf("toggle must be persisted")
	}

	toggled, err = svc.TogglePublish(context.Background(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("second TogglePublish: %v", err)
	}
	if !toggled.IsPublished {
		t.Fatalf("expected publish flag flipped back to true")
	}
}

func TestVideoService_TogglePublish_NotOwner(t *testing.T) {
	repo := newStubVideoRepo()
	svc := newVideoService(repo, &fakeMedia{}, nil)

	created, err := svc.Create(context.Background(), createVideoInput("user-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.TogglePublish(context.Background(), created.ID, "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
