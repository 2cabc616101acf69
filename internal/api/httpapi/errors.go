package httpapi

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/widget"
)

// newHTTPErrorHandler maps application errors to status codes. Anything
// unrecognised is logged and reported as a bare 500.
func newHTTPErrorHandler(logger *log.Logger, rv *requestValidator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code    int
			message any
			httpErr *echo.HTTPError
			valErrs validator.ValidationErrors
		)

		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = httpErr.Message
		case errors.As(err, &valErrs):
			code = http.StatusBadRequest
			message = rv.fields(valErrs, "value")
		case errors.Is(err, apperrors.ErrNoActiveWeek):
			code = http.StatusNotFound
			message = widget.NoActiveRoutine
		case errors.Is(err, apperrors.ErrInvalidInput):
			code = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperrors.ErrDataCorruption):
			code = http.StatusInternalServerError
			message = err.Error()
			logger.Error("data file is corrupt", "err", err)
		default:
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)
			logger.Error("request failed", "method", ctx.Request().Method, "path", ctx.Path(), "err", err)
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				logger.Error("write error response", "err", err)
			}
		}
	}
}
