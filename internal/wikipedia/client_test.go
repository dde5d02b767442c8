package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tacitus-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleURL(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Paris", "https://en.wikipedia.org/wiki/Paris"},
		{"Eiffel Tower", "https://en.wikipedia.org/wiki/Eiffel_Tower"},
		{"Île de la Cité", "https://en.wikipedia.org/wiki/%C3%8Ele_de_la_Cit%C3%A9"},
		{"Notre-Dame (Paris)", "https://en.wikipedia.org/wiki/Notre-Dame_%28Paris%29"},
		{"AC/DC", "https://en.wikipedia.org/wiki/AC%2FDC"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, ArticleURL(tt.title))
		})
	}
}

func TestClient_SearchByText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "search", q.Get("list"))
		assert.Equal(t, "Paris, France", q.Get("srsearch"))
		assert.Equal(t, "10", q.Get("srlimit"))
		assert.Equal(t, "Tacitus-Test", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"query":{"search":[{"title":"Paris"},{"title":"Eiffel Tower"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "Tacitus-Test", time.Second)

	got, err := client.SearchByText(context.Background(), "Paris, France")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Paris",
		"https://en.wikipedia.org/wiki/Eiffel_Tower",
	}, got)
}

func TestClient_SearchByCoordinates(t *testing.T) {
	var hits []string
	for i := 0; i < 12; i++ {
		hits = append(hits, fmt.Sprintf(`{"title":"Place %d","dist":%d}`, i, i*10))
	}
	body := `{"query":{"geosearch":[` + strings.Join(hits, ",") + `]}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "geosearch", q.Get("list"))
		assert.Equal(t, "48.8566|2.3522", q.Get("gscoord"))
		assert.Equal(t, "10000", q.Get("gsradius"))
		assert.Equal(t, "10", q.Get("gslimit"))
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "Tacitus-Test", time.Second)

	got, err := client.SearchByCoordinates(context.Background(), 48.8566, 2.3522, 0)
	require.NoError(t, err)
	require.Len(t, got, MaxResults)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Place_0", got[0])
	assert.Equal(t, "https://en.wikipedia.org/wiki/Place_9", got[9])
}

func TestClient_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"batchcomplete":"","query":{"geosearch":[],"search":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "Tacitus-Test", time.Second)

	byText, err := client.SearchByText(context.Background(), "Nowhereville")
	require.NoError(t, err)
	assert.Empty(t, byText)

	byCoords, err := client.SearchByCoordinates(context.Background(), 0, 0, DefaultRadiusMeters)
	require.NoError(t, err)
	assert.Empty(t, byCoords)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
		},
		{
			name: "api error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":{"code":"invalid-coord","info":"Invalid coordinate provided"}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, "Tacitus-Test", time.Second)

			_, err := client.SearchByText(context.Background(), "Paris")
			assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)

			_, err = client.SearchByCoordinates(context.Background(), 1, 2, 500)
			assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
		})
	}
}
