package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/labstack/echo/v4"
)

const validationTitle = "validation error"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
	Code  string `json:"code,omitempty"`
	Param string `json:"param,omitempty"`
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var pe *pagination.ValidationError
		if errors.As(err, &pe) {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: pe.Message,
				Title: validationTitle,
				Code:  string(pe.Code),
				Param: pe.Param,
			})
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Title: validationTitle, Param: ve.Field})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, ErrorResponse{Error: msg})
			return
		}

		slog.Error("Unhandled error", "error", err, "path", c.Path())
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
