package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/recognarr/recognarr/pkg/episode"
	mhttp "github.com/recognarr/recognarr/pkg/http"
	"github.com/recognarr/recognarr/pkg/logger"
)

const DefaultTimeout = 15 * time.Second

// HTTPRecognizer calls a remote recognition service over HTTP. Transport
// failures, bad statuses, and malformed responses all degrade to an empty
// result; the caller never sees an error.
type HTTPRecognizer struct {
	client   mhttp.HTTPClient
	endpoint string
	apiKey   string
	timeout  time.Duration
}

type RecognizerOption func(*HTTPRecognizer)

func WithClient(client mhttp.HTTPClient) RecognizerOption {
	return func(r *HTTPRecognizer) {
		r.client = client
	}
}

func WithAPIKey(key string) RecognizerOption {
	return func(r *HTTPRecognizer) {
		r.apiKey = key
	}
}

func WithTimeout(timeout time.Duration) RecognizerOption {
	return func(r *HTTPRecognizer) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func NewHTTPRecognizer(endpoint string, opts ...RecognizerOption) *HTTPRecognizer {
	r := &HTTPRecognizer{
		client:   mhttp.NewRateLimitedHTTPClient(),
		endpoint: endpoint,
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

type recognizeRequest struct {
	Filename  string `json:"filename"`
	ShowTitle string `json:"showTitle,omitempty"`
}

type recognizeResponse struct {
	Season   *int   `json:"season"`
	Episodes []int  `json:"episodes"`
	Title    string `json:"title"`
}

// Recognize posts the filename and show title to the remote service and maps
// its answer onto a MatchResult.
func (h *HTTPRecognizer) Recognize(ctx context.Context, filename, showTitle string) episode.MatchResult {
	log := logger.FromCtx(ctx)
	empty := Empty(filename)

	body, err := json.Marshal(recognizeRequest{Filename: filename, ShowTitle: showTitle})
	if err != nil {
		log.Debugw("failed to encode recognize request", "error", err)
		return empty
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Debugw("failed to build recognize request", "error", err)
		return empty
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", h.apiKey))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Debugw("recognize call failed", "error", err)
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debugw("recognize call returned bad status", "status", resp.StatusCode)
		return empty
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		log.Debugw("failed to read recognize response", "error", err)
		return empty
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(b, &parsed); err != nil {
		log.Debugw("failed to decode recognize response", "error", err)
		return empty
	}

	result := *episode.NewMatchResult(filename)
	if parsed.Season != nil && *parsed.Season >= 0 {
		result.Season = *parsed.Season
	}
	for _, ep := range parsed.Episodes {
		if ep >= 0 {
			result.AddEpisode(ep)
		}
	}
	result.CleanedName = parsed.Title

	return result
}
