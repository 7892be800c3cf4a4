package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperr "github.com/forgiv/bloggy-server/internal/errors"
)

// ErrorHandler renders every error as an ErrorResponse. Internal detail is
// attached only outside production.
func ErrorHandler(production bool, log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).WithError(err).Error("unhandled error")
		}

		resp := httpErr.ToErrorResponse()
		if !production && httpErr.Internal != nil {
			resp.Error = httpErr.Internal.Error()
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, resp)
		}
		if writeErr != nil {
			log.WithError(writeErr).Warn("write error response")
		}
	}
}

func toHTTPError(err error) *apperr.HTTPError {
	var httpErr *apperr.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	// Router-level errors such as unmatched routes or disallowed methods.
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return apperr.NewHTTPError(http.StatusNotFound, "Not Found", apperr.ReasonNotFound)
		case http.StatusUnauthorized:
			return apperr.Unauthenticated(echoErr)
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			e := apperr.BadRequest()
			e.Internal = echoErr
			return e
		}
		text := http.StatusText(echoErr.Code)
		e := apperr.NewHTTPError(echoErr.Code, text, strings.ReplaceAll(text, " ", ""))
		if echoErr.Internal != nil {
			e.Internal = echoErr.Internal
		}
		return e
	}

	return apperr.MapErrorToHTTP(err)
}
