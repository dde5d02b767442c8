package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(logger zerolog.Logger, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(logger), Logger())
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("handled")
		c.String(http.StatusOK, "pong")
	})
	return r
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		lines = append(lines, m)
	}
	return lines
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated when absent"},
		{name: "propagated when present", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := newEngine(zerolog.New(&buf))

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			id := w.Header().Get(RequestIDHeader)
			require.NotEmpty(t, id)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, id)
			} else {
				assert.Len(t, id, 36)
			}

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 2)
			for _, line := range lines {
				assert.Equal(t, id, line["request_id"])
			}
			assert.Equal(t, "handled", lines[0]["message"])
			assert.Equal(t, "request", lines[1]["message"])
			assert.Equal(t, "/ping", lines[1]["path"])
			assert.EqualValues(t, http.StatusOK, lines[1]["status"])
		})
	}
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		header         string
		expectedStatus int
	}{
		{name: "disabled", key: "", header: "", expectedStatus: http.StatusOK},
		{name: "correct key", key: "s3cret", header: "s3cret", expectedStatus: http.StatusOK},
		{name: "missing key", key: "s3cret", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong key", key: "s3cret", header: "guess", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(zerolog.Nop(), APIKey(tt.key))

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}
