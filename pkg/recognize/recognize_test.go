package recognize

import (
	"context"
	"testing"

	"github.com/recognarr/recognarr/pkg/ai/mocks"
	"github.com/recognarr/recognarr/pkg/cache"
	"github.com/recognarr/recognarr/pkg/episode"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRecognizeTraditional(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	recognizer := mocks.NewMockRecognizer(ctrl)

	resultCache := cache.New()
	c := New(resultCache, recognizer)

	// a complete traditional result never reaches the AI stage, even with
	// useAI set
	got := c.Recognize(ctx, "Show.Name.S02E05.mkv", "Show Name", true)
	assert.Equal(t, 2, got.Season)
	assert.Equal(t, []int{5}, got.Episodes)
}

func TestRecognizeChinese(t *testing.T) {
	ctx := context.Background()

	resultCache := cache.New()
	c := New(resultCache, nil)

	got := c.Recognize(ctx, "第2季第10集.mkv", "", false)
	assert.Equal(t, 2, got.Season)
	assert.Equal(t, []int{10}, got.Episodes)
}

func TestRecognizeCaching(t *testing.T) {
	ctx := context.Background()

	resultCache := cache.New()
	c := New(resultCache, nil)

	first := c.Recognize(ctx, "Show.S01E02.mkv", "Show", false)
	hitsAfterFirst := resultCache.HitCount()

	second := c.Recognize(ctx, "Show.S01E02.mkv", "Show", false)
	assert.Equal(t, first, second)
	assert.Greater(t, resultCache.HitCount(), hitsAfterFirst, "second call should be served from the cache")
}

func TestRecognizeAIFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("complete ai answer wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recognizer := mocks.NewMockRecognizer(ctrl)

		want := episode.NewMatchResult("asdf.mkv")
		want.Season = 3
		want.AddEpisode(7)
		recognizer.EXPECT().Recognize(gomock.Any(), "asdf.mkv", "asdf").Times(1).Return(*want)

		c := New(cache.New(), recognizer)
		got := c.Recognize(ctx, "asdf.mkv", "asdf", true)
		assert.Equal(t, 3, got.Season)
		assert.Equal(t, []int{7}, got.Episodes)

		// the second call is served from the hybrid cache, not the recognizer
		again := c.Recognize(ctx, "asdf.mkv", "asdf", true)
		assert.Equal(t, got, again)
	})

	t.Run("empty ai answer falls back to the best parser result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recognizer := mocks.NewMockRecognizer(ctrl)
		recognizer.EXPECT().Recognize(gomock.Any(), "asdf.mkv", "asdf").Times(1).Return(*episode.NewMatchResult("asdf.mkv"))

		c := New(cache.New(), recognizer)
		got := c.Recognize(ctx, "asdf.mkv", "asdf", true)
		assert.False(t, got.IsComplete())
	})

	t.Run("useAI false never calls the recognizer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recognizer := mocks.NewMockRecognizer(ctrl)

		c := New(cache.New(), recognizer)
		got := c.Recognize(ctx, "asdf.mkv", "asdf", false)
		assert.False(t, got.IsComplete())
	})

	t.Run("gate rejection skips the recognizer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recognizer := mocks.NewMockRecognizer(ctrl)

		c := New(cache.New(), recognizer)
		got := c.Recognize(ctx, "show.trailer.mkv", "show", true)
		assert.False(t, got.IsComplete())
	})
}

func TestPickBest(t *testing.T) {
	withEpisodes := func() episode.MatchResult {
		r := episode.NewMatchResult("a")
		r.AddEpisode(4)
		return *r
	}
	withSeason := func() episode.MatchResult {
		r := episode.NewMatchResult("b")
		r.Season = 2
		return *r
	}
	empty := func() episode.MatchResult {
		return *episode.NewMatchResult("c")
	}

	assert.Equal(t, withEpisodes(), pickBest(withEpisodes(), withSeason()))
	assert.Equal(t, withEpisodes(), pickBest(withSeason(), withEpisodes()))
	assert.Equal(t, withSeason(), pickBest(withSeason(), empty()))
	assert.Equal(t, withSeason(), pickBest(empty(), withSeason()))
	assert.Equal(t, empty(), pickBest(empty(), empty()))
}
