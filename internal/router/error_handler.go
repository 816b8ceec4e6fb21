package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "gamecatalog/internal/errors"
)

// NewHTTPErrorHandler renders every failure as an ErrorResponse. Unknown
// errors are logged and reported without details.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"error", err,
				"method", c.Request().Method,
				"route", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("write error response", "error", err)
		}
	}
}

func render(err error) (int, apperrors.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if resp, ok := he.Message.(apperrors.ErrorResponse); ok {
			return he.Code, resp
		}
		msg := fmt.Sprint(he.Message)
		if he.Code >= http.StatusInternalServerError {
			msg = "internal server error"
		}
		return he.Code, apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
