package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Payload builds the error response body: the status text keyed as "error",
// plus an optional human-readable "message".
func Payload(code int, message string) map[string]interface{} {
	text := http.StatusText(code)
	if text == "" {
		text = "Unknown error"
	}
	payload := map[string]interface{}{"error": text}
	if message != "" {
		payload["message"] = message
	}
	return payload
}

// Handler is the echo HTTPErrorHandler. Any *echo.HTTPError keeps its status
// code; everything else is reported as a 500. The body always has the
// {error, message} shape.
func Handler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := ""
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, Payload(code, message))
}
