package recognize

import (
	"context"
	"path"
	"strings"

	"github.com/recognarr/recognarr/pkg/ai"
	"github.com/recognarr/recognarr/pkg/cache"
	"github.com/recognarr/recognarr/pkg/episode"
	"github.com/recognarr/recognarr/pkg/logger"
	"github.com/recognarr/recognarr/pkg/machine"
)

// Stage is a step in the hybrid recognition sequence.
type Stage string

const (
	StageTraditional Stage = "traditional"
	StageChinese     Stage = "chinese"
	StageAIDecision  Stage = "ai_decision"
	StageAIAttempt   Stage = "ai_attempt"
	StageDone        Stage = "done"
)

// newStageMachine wires the allowed progression: every stage can short-circuit
// straight to done.
func newStageMachine() *machine.StateMachine[Stage] {
	return machine.New(StageTraditional,
		machine.From(StageTraditional).To(StageChinese, StageDone),
		machine.From(StageChinese).To(StageAIDecision, StageDone),
		machine.From(StageAIDecision).To(StageAIAttempt, StageDone),
		machine.From(StageAIAttempt).To(StageDone),
	)
}

// Coordinator sequences traditional detection, the Chinese-format pass, and
// the optional AI fallback, short-circuiting on the first complete result.
// Every stage consults and populates the shared result cache.
type Coordinator struct {
	cache     *cache.ResultCache
	ai        ai.Recognizer
	gate      *Gate
	threshold float64
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

func WithThreshold(threshold float64) CoordinatorOption {
	return func(c *Coordinator) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// New creates a Coordinator. The recognizer may be nil, which disables the AI
// stage entirely.
func New(resultCache *cache.ResultCache, recognizer ai.Recognizer, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		cache:     resultCache,
		ai:        recognizer,
		threshold: DefaultThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.gate = NewGate(c.threshold)
	return c
}

// Recognize resolves a relative path to a season/episode result. useAI gates
// the AI fallback per call; the coordinator's fast paths never depend on it.
func (c *Coordinator) Recognize(ctx context.Context, relativePath, showName string, useAI bool) episode.MatchResult {
	log := logger.FromCtx(ctx)

	hybridKey := cache.Key(cache.PrefixHybrid, relativePath, showName)
	if res, ok := c.cache.Get(hybridKey); ok {
		return res
	}

	sm := newStageMachine()
	filename := path.Base(strings.ReplaceAll(relativePath, "\\", "/"))

	// Traditional detection.
	tradKey := cache.Key(cache.PrefixTraditional, relativePath, showName)
	trad, ok := c.cache.Get(tradKey)
	if !ok {
		trad = *episode.Parse(ctx, relativePath, showName)
		c.cache.Put(tradKey, trad)
	}
	if trad.IsComplete() {
		c.finish(sm, hybridKey, trad)
		return trad
	}

	// Chinese-format pass against the raw filename.
	if err := sm.Transition(StageChinese); err != nil {
		log.Warnw("stage transition rejected", "to", StageChinese, "error", err)
	}
	ch := *episode.ParseChinese(filename)
	if ch.IsComplete() {
		c.finish(sm, hybridKey, ch)
		return ch
	}

	best := pickBest(trad, ch)

	if !useAI || c.ai == nil {
		c.finish(sm, hybridKey, best)
		return best
	}

	if err := sm.Transition(StageAIDecision); err != nil {
		log.Warnw("stage transition rejected", "to", StageAIDecision, "error", err)
	}
	if !c.gate.Eligible(filename, showName, best) {
		log.Debugw("ai fallback skipped by eligibility gate", "file", filename)
		c.finish(sm, hybridKey, best)
		return best
	}

	if err := sm.Transition(StageAIAttempt); err != nil {
		log.Warnw("stage transition rejected", "to", StageAIAttempt, "error", err)
	}

	// AI answers are cached even when empty so futile calls are not repeated.
	aiKey := cache.Key(cache.PrefixAI, relativePath, showName)
	aiRes, ok := c.cache.Get(aiKey)
	if !ok {
		aiRes = c.ai.Recognize(ctx, filename, showName)
		c.cache.Put(aiKey, aiRes)
	}

	if aiRes.IsComplete() {
		c.finish(sm, hybridKey, aiRes)
		return aiRes
	}

	c.finish(sm, hybridKey, best)
	return best
}

func (c *Coordinator) finish(sm *machine.StateMachine[Stage], hybridKey string, result episode.MatchResult) {
	_ = sm.Transition(StageDone)
	c.cache.Put(hybridKey, result)
}

// pickBest prefers the result with episodes, then the one with a season.
func pickBest(trad, ch episode.MatchResult) episode.MatchResult {
	switch {
	case trad.HasEpisodes():
		return trad
	case ch.HasEpisodes():
		return ch
	case trad.HasSeason() || trad.HasDate():
		return trad
	case ch.HasSeason():
		return ch
	default:
		return trad
	}
}
