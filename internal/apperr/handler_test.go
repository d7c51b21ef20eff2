package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/keypage/internal/apperr"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "pagination validation",
			err: fmt.Errorf("paginate: %w", &pagination.ValidationError{
				Code:    pagination.LimitTooLarge,
				Param:   pagination.LimitParam,
				Message: "limit exceeds maximum of 100",
			}),
			code: http.StatusBadRequest,
			body: `{"error":"limit exceeds maximum of 100","title":"validation error","code":"limit_too_large","param":"limit"}`,
		},
		{
			name: "app validation",
			err:  apperr.NewValidation("title is required"),
			code: http.StatusBadRequest,
			body: `{"error":"title is required","title":"validation error"}`,
		},
		{
			name: "field validation",
			err:  apperr.NewFieldValidation("articles[0].title", "is required"),
			code: http.StatusBadRequest,
			body: `{"error":"is required","title":"validation error","param":"articles[0].title"}`,
		},
		{
			name: "echo http error",
			err:  echo.NewHTTPError(http.StatusNotFound, "Not Found"),
			code: http.StatusNotFound,
			body: `{"error":"Not Found"}`,
		},
		{
			name: "datastore failure is not leaked",
			err:  fmt.Errorf("failed to fetch page: %w", errors.New("dial tcp 10.0.0.5:5432: connection refused")),
			code: http.StatusInternalServerError,
			body: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/articles", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/articles", nil), rec)
	_ = c.String(http.StatusOK, "partial")

	apperr.GlobalErrorHandler()(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
