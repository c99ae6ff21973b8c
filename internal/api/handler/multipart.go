package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/backend/internal/core/ports"
)

// formMediaFile opens the named multipart file field. A missing field returns
// (nil, nil, nil) so optional files stay optional; callers must close the
// returned closer when it is non-nil.
func formMediaFile(c echo.Context, field string) (*ports.MediaFile, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file "+field)
	}

	return &ports.MediaFile{Name: fh.Filename, Content: f}, f, nil
}
