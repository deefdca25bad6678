package ai

import (
	"context"

	"github.com/recognarr/recognarr/pkg/episode"
)

// Recognizer is the AI fallback port: given a filename and a show title it
// returns a best-effort season/episode guess. Implementations own their retry
// and backoff behavior and report every ordinary failure mode (network
// timeout, rate limit, malformed response) as an empty MatchResult, never as
// an error.
type Recognizer interface {
	Recognize(ctx context.Context, filename, showTitle string) episode.MatchResult
}

// Empty is the result every implementation returns when it has nothing.
func Empty(filename string) episode.MatchResult {
	return *episode.NewMatchResult(filename)
}
