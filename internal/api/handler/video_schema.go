package handler

import "github.com/videotube/backend/internal/core/domain"

// Video create/list use form and query parameters; only the response shapes
// live here.

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listVideosData struct {
	Videos     []*domain.Video    `json:"videos"`
	Pagination paginationResponse `json:"pagination"`
}
