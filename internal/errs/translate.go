package errs

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kvasnev/hotel_listing/internal/logging"
)

// ErrorDetails is the wire shape of every error response.
type ErrorDetails struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

// NewHTTPErrorHandler translates domain errors at the boundary. Handlers and
// repositories return taxonomy errors as-is; nothing below this layer formats
// a transport response. Unknown failures collapse to a label-only 500 so
// internals never leak.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		l := logging.FromContext(c.Request().Context())

		status := http.StatusInternalServerError
		details := ErrorDetails{ErrorType: "Internal Server Error", ErrorMessage: "something went wrong"}

		var verrs ValidationErrors
		var httpErr *echo.HTTPError
		switch {
		case errors.Is(err, ErrNotFound):
			status = http.StatusNotFound
			details = ErrorDetails{ErrorType: "Not Found", ErrorMessage: err.Error()}
		case errors.Is(err, ErrUnauthorized):
			status = http.StatusUnauthorized
			details = ErrorDetails{ErrorType: "Unauthorized", ErrorMessage: err.Error()}
		case errors.Is(err, ErrConcurrencyConflict):
			status = http.StatusConflict
			details = ErrorDetails{ErrorType: "Conflict", ErrorMessage: err.Error()}
		case errors.As(err, &verrs):
			status = http.StatusBadRequest
			details = ErrorDetails{ErrorType: "Validation Error", ErrorMessage: verrs.Error()}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			details = ErrorDetails{ErrorType: http.StatusText(httpErr.Code), ErrorMessage: messageText(httpErr.Message)}
		default:
			l.Error("unhandled_error", "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, details)
	}
}

func messageText(m any) string {
	if s, ok := m.(string); ok {
		return s
	}
	if e, ok := m.(error); ok {
		return e.Error()
	}
	return "request failed"
}
