package apperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "configuration error",
			err:        apperr.NewConfiguration("SUPABASE_URL is not set"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"title":"configuration error"`,
		},
		{
			name:       "source unavailable",
			err:        apperr.NewSourceUnavailable("words.txt", errors.New("no such file")),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "source words.txt unavailable",
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusNotFound, "not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `"error":"not found"`,
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
		{
			name:       "head has no body",
			err:        errors.New("pool exhausted"),
			method:     http.MethodHead,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(method, "/progress", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "pool exhausted")
		})
	}
}
