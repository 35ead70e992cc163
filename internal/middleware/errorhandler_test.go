package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
)

func TestErrorHandler_SentinelMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unsupported format", apperr.ErrUnsupportedFormat, http.StatusUnprocessableEntity},
		{"no readable table", fmt.Errorf("resolve: %w", apperr.ErrNoReadableTable), http.StatusUnprocessableEntity},
		{"version not found", apperr.ErrVersionNotFound, http.StatusNotFound},
		{"store unavailable", fmt.Errorf("%w: dial tcp", apperr.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler)
			r.GET("/", func(c *gin.Context) { _ = c.Error(tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}
		})
	}
}

func TestErrorHandler_SkipsWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusTeapot, "already answered")
		_ = c.Error(fmt.Errorf("late error"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("handler response must win: %d", w.Code)
	}
}
