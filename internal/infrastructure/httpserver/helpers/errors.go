package helpers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

// HTTPError maps a domain error onto an echo HTTP error. Unknown errors
// become a 500 with fallback as the message.
func HTTPError(err error, fallback string) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, fallback).SetInternal(err)
	}
	return echo.NewHTTPError(status, domain.Message(err, fallback))
}
