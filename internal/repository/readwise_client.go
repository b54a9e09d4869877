package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"readwise-notifier/internal/domain"
	"readwise-notifier/pkg/retry"
)

// DefaultReadwiseAPIURL is the production API base.
const DefaultReadwiseAPIURL = "https://readwise.io/api/v2"

const maxPageSize = 1000

// StatusError is a non-2xx response from the upstream API.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// RetryableStatus reports whether err is a connection-level failure or one of
// the transient HTTP statuses (500, 502, 503, 504). Other statuses fail
// immediately without retry.
func RetryableStatus(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	// Anything that never produced a status line is connection-level.
	return true
}

// ReadwiseClient implements domain.HighlightSource against the Readwise v2
// API: token-authenticated, paginated GET endpoints returning
// {"results": [...], "next": url-or-null}.
type ReadwiseClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     domain.Logger
}

// NewReadwiseClient creates a client sharing one http.Client for the run.
func NewReadwiseClient(config domain.Config, logger domain.Logger) domain.HighlightSource {
	timeout := time.Duration(config.GetHTTPTimeoutSeconds()) * time.Second
	return &ReadwiseClient{
		baseURL:    config.GetReadwiseAPIURL(),
		token:      config.GetReadwiseToken(),
		httpClient: &http.Client{Timeout: timeout},
		retrier:    retry.NewRetrier(retry.DefaultConfig(), RetryableStatus, logger),
		logger:     logger,
	}
}

type pageResponse struct {
	Results []json.RawMessage `json:"results"`
	Next    *string           `json:"next"`
}

// FetchHighlights retrieves highlights across all pages, following the
// server-supplied next cursor. A limit of 0 means no cap; a positive limit
// truncates the accumulated result to exactly limit items. Any page failing
// after retries abandons the whole fetch.
func (c *ReadwiseClient) FetchHighlights(ctx context.Context, limit int) ([]domain.Highlight, error) {
	raw, err := c.fetchAll(ctx, "/highlights/", limit)
	if err != nil {
		return nil, err
	}

	highlights := make([]domain.Highlight, 0, len(raw))
	for _, item := range raw {
		var h domain.Highlight
		if err := json.Unmarshal(item, &h); err != nil {
			c.logger.Warn("skipping malformed highlight record", "error", err)
			continue
		}
		highlights = append(highlights, h)
	}

	c.logger.Info("fetched highlights", "count", len(highlights))
	return highlights, nil
}

// FetchBooks retrieves all books keyed by id. Full records are preserved so
// formatting has access to author, category, source and cover fields.
func (c *ReadwiseClient) FetchBooks(ctx context.Context) (map[int64]domain.Book, error) {
	raw, err := c.fetchAll(ctx, "/books/", 0)
	if err != nil {
		return nil, err
	}

	books := make(map[int64]domain.Book, len(raw))
	for _, item := range raw {
		var b domain.Book
		if err := json.Unmarshal(item, &b); err != nil {
			c.logger.Warn("skipping malformed book record", "error", err)
			continue
		}
		books[b.ID] = b
	}

	c.logger.Info("fetched books", "count", len(books))
	return books, nil
}

// fetchAll walks the paginated endpoint starting at path. Page-size
// parameters apply only to the first request; subsequent requests use the
// server-supplied next URL verbatim. A next cursor identical to the URL just
// fetched is treated as end-of-stream rather than looping forever.
func (c *ReadwiseClient) fetchAll(ctx context.Context, path string, limit int) ([]json.RawMessage, error) {
	pageURL := fmt.Sprintf("%s%s?page_size=%d", c.baseURL, path, maxPageSize)

	var items []json.RawMessage
	for pageURL != "" {
		c.logger.Debug("fetching page", "url", pageURL)

		page, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Results...)
		if limit > 0 && len(items) >= limit {
			items = items[:limit]
			break
		}

		next := ""
		if page.Next != nil {
			next = *page.Next
		}
		if next == pageURL {
			c.logger.Warn("pagination cursor did not advance, stopping", "url", pageURL)
			break
		}
		pageURL = next
	}

	return items, nil
}

// fetchPage performs one GET with the shared retry policy.
func (c *ReadwiseClient) fetchPage(ctx context.Context, pageURL string) (*pageResponse, error) {
	if _, err := url.Parse(pageURL); err != nil {
		return nil, fmt.Errorf("invalid page url: %w", err)
	}

	var page pageResponse
	err := c.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Token "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return &StatusError{Code: resp.StatusCode, URL: pageURL}
		}

		page = pageResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return fmt.Errorf("decode page: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}
