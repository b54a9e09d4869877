package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"readwise-notifier/internal/domain"
	"readwise-notifier/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Info(msg string, fields ...interface{})             {}
func (testLogger) Error(msg string, err error, fields ...interface{}) {}
func (testLogger) Debug(msg string, fields ...interface{})            {}
func (testLogger) Warn(msg string, fields ...interface{})             {}

func fastRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:   3,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func newTestClient(baseURL string) *ReadwiseClient {
	return &ReadwiseClient{
		baseURL:    baseURL,
		token:      "test-token",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		retrier:    retry.NewRetrier(fastRetryConfig(), RetryableStatus, testLogger{}),
		logger:     testLogger{},
	}
}

func highlightPage(ids []int64, next *string) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		results = append(results, map[string]interface{}{
			"id":   id,
			"text": fmt.Sprintf("highlight %d", id),
		})
	}
	return map[string]interface{}{"results": results, "next": next}
}

func idRange(from, to int64) []int64 {
	ids := make([]int64, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return ids
}

func TestFetchHighlights_ThreePagePagination(t *testing.T) {
	var baseURL string
	requests := 0

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "Token test-token", r.Header.Get("Authorization"))

		var page map[string]interface{}
		switch r.URL.Query().Get("page") {
		case "2":
			next := baseURL + "/highlights/?page=3"
			page = highlightPage(idRange(1001, 2000), &next)
		case "3":
			page = highlightPage(idRange(2001, 2040), nil)
		default:
			// First request carries the page-size parameter; later ones do not.
			require.Equal(t, "1000", r.URL.Query().Get("page_size"))
			next := baseURL + "/highlights/?page=2"
			page = highlightPage(idRange(1, 1000), &next)
		}
		json.NewEncoder(w).Encode(page)
	})

	srv := httptest.NewServer(handler)
	defer srv.Close()
	baseURL = srv.URL

	client := newTestClient(srv.URL)
	highlights, err := client.FetchHighlights(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	require.Len(t, highlights, 2040)

	seen := make(map[int64]bool, len(highlights))
	for _, h := range highlights {
		assert.False(t, seen[h.ID], "duplicate highlight id %d", h.ID)
		seen[h.ID] = true
	}
	assert.True(t, seen[1] && seen[2040])
}

func TestFetchHighlights_LimitTruncates(t *testing.T) {
	var baseURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			json.NewEncoder(w).Encode(highlightPage(idRange(1001, 2000), nil))
			return
		}
		next := baseURL + "/highlights/?page=2"
		json.NewEncoder(w).Encode(highlightPage(idRange(1, 1000), &next))
	}))
	defer srv.Close()
	baseURL = srv.URL

	client := newTestClient(srv.URL)
	highlights, err := client.FetchHighlights(context.Background(), 1500)

	require.NoError(t, err)
	assert.Len(t, highlights, 1500)
}

func TestFetchHighlights_RepeatedCursorStops(t *testing.T) {
	var firstURL string
	requests := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Echo the exact URL of the first request back as the next cursor.
		json.NewEncoder(w).Encode(highlightPage(idRange(1, 10), &firstURL))
	}))
	defer srv.Close()
	firstURL = srv.URL + "/highlights/?page_size=1000"

	client := newTestClient(srv.URL)
	highlights, err := client.FetchHighlights(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.Len(t, highlights, 10)
}

func TestFetchHighlights_RetriesTransientStatus(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(highlightPage(idRange(1, 5), nil))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	highlights, err := client.FetchHighlights(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	assert.Len(t, highlights, 5)
}

func TestFetchHighlights_ClientErrorFailsImmediately(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.FetchHighlights(context.Background(), 0)

	require.Error(t, err)
	assert.Equal(t, 1, requests, "4xx must not be retried")
}

func TestFetchBooks_KeyedByIDWithFullRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"id":              1,
					"title":           "Thinking, Fast and Slow",
					"author":          "Daniel Kahneman",
					"category":        "books",
					"source_url":      "https://example.com/tfs",
					"cover_image_url": "https://example.com/tfs.jpg",
				},
				{"id": 2, "title": "Some Article"},
			},
			"next": nil,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	books, err := client.FetchBooks(context.Background())

	require.NoError(t, err)
	require.Len(t, books, 2)

	book := books[1]
	assert.Equal(t, "Thinking, Fast and Slow", book.Title)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Daniel Kahneman", *book.Author)
	require.NotNil(t, book.CoverImageURL)
	assert.Equal(t, "https://example.com/tfs.jpg", *book.CoverImageURL)

	assert.Nil(t, books[2].Author)
	assert.Nil(t, books[2].SourceURL)
}

func TestRetryableStatus(t *testing.T) {
	cases := []struct {
		code int
		want bool
	}{
		{500, true}, {502, true}, {503, true}, {504, true},
		{400, false}, {401, false}, {404, false}, {429, false},
	}
	for _, c := range cases {
		got := RetryableStatus(&StatusError{Code: c.code})
		if got != c.want {
			t.Fatalf("status %d: expected retryable=%v, got %v", c.code, c.want, got)
		}
	}
}

var _ domain.HighlightSource = (*ReadwiseClient)(nil)
