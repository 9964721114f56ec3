package http

import (
	"errors"
	"net/http"

	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body returned on every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError translates a core error into an HTTP response. The mapping is
// by sentinel, so handlers never inspect transport concerns and the HTTP
// layer never inspects domain state.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrOrderNotAvailable),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrLocationUnavailable):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
	}

	message := "internal error"
	if code != http.StatusInternalServerError {
		message = err.Error()
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func writeUnauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
