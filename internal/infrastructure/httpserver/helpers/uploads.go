package helpers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/ports"
)

// maxUploadRead caps how much of a form file is buffered; anything past it is
// reported as too large by the image service.
const maxUploadRead = 6 << 20

// FormUpload reads the multipart file field. It returns nil when the field
// is absent or empty.
func FormUpload(c echo.Context, field string) (*ports.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	if fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadRead))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	return &ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// FormString returns a pointer to the form value when the field was submitted.
func FormString(c echo.Context, field string) *string {
	form, err := c.FormParams()
	if err != nil {
		return nil
	}
	if _, ok := form[field]; !ok {
		return nil
	}
	v := form.Get(field)
	return &v
}
