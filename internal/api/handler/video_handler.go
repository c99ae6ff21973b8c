package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/videotube/backend/internal/core/ports"
)

// VideoHandler exposes video metadata endpoints.
type VideoHandler struct {
	videos ports.VideoService
}

func NewVideoHandler(videos ports.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Create uploads a new video with its thumbnail and persists the metadata.
//
// @Summary      Publish a new video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title       formData  string  true  "Title"
// @Param        description formData  string  true  "Description"
// @Param        duration    formData  number  true  "Duration in seconds"
// @Param        videoFile   formData  file    true  "Video file"
// @Param        thumbnail   formData  file    true  "Thumbnail image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  map[string]any
// @Router       /api/v1/videos [post]
func (h *VideoHandler) Create(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	duration, err := strconv.ParseFloat(c.FormValue("duration"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "duration must be a number of seconds")
	}

	videoFile, videoCloser, err := formMediaFile(c, "videoFile")
	if err != nil {
		return err
	}
	if videoCloser != nil {
		defer videoCloser.Close()
	}

	thumbnail, thumbCloser, err := formMediaFile(c, "thumbnail")
	if err != nil {
		return err
	}
	if thumbCloser != nil {
		defer thumbCloser.Close()
	}

	video, err := h.videos.Create(c.Request().Context(), ports.CreateVideoInput{
		Title:           c.FormValue("title"),
		Description:     c.FormValue("description"),
		DurationSeconds: duration,
		VideoFile:       videoFile,
		Thumbnail:       thumbnail,
		OwnerID:         ownerID,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, video, "video published successfully")
}

// Get returns a single video and records a view for the caller. The viewer
// identity is the authenticated user id when present, otherwise the client
// address, so anonymous views still deduplicate.
//
// @Summary      Get a video by id
// @Tags         videos
// @Produce      json
// @Param        id  path      string  true  "Video id"
// @Success      200 {object}  apiResponse
// @Failure      404 {object}  map[string]any
// @Router       /api/v1/videos/{id} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	viewerID, _ := c.Get("user_id").(string)
	if viewerID == "" {
		viewerID = c.RealIP()
	}

	video, err := h.videos.Get(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, video, "video fetched successfully")
}

// List returns a page of published videos.
//
// @Summary      List published videos
// @Tags         videos
// @Produce      json
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Param        query  query     string  false  "Search in title and description"
// @Param        owner  query     string  false  "Filter by owner id"
// @Success      200    {object}  apiResponse
// @Router       /api/v1/videos [get]
func (h *VideoHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.videos.List(c.Request().Context(), ports.ListVideosInput{
		Search:  c.QueryParam("query"),
		OwnerID: c.QueryParam("owner"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, listVideosData{
		Videos: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}, "videos fetched successfully")
}

// TogglePublish flips the publish flag of an owned video.
//
// @Summary      Toggle the publish flag
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Video id"
// @Success      200 {object}  apiResponse
// @Failure      403 {object}  map[string]any
// @Failure      404 {object}  map[string]any
// @Router       /api/v1/videos/{id}/toggle-publish [patch]
func (h *VideoHandler) TogglePublish(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	video, err := h.videos.TogglePublish(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, video, "publish status toggled successfully")
}
