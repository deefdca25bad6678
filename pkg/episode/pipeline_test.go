package episode

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"0205", 205, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-3", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseNumber(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeCandidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "extension stripped",
			in:   "Show.S01E01.mkv",
			want: " Show.S01E01 ",
		},
		{
			name: "separators flattened",
			in:   `Folder\Show/Name`,
			want: " Folder Show Name ",
		},
		{
			name: "bracketed year removed",
			in:   "Show (2019) S01E01",
			want: " Show   S01E01 ",
		},
		{
			name: "release hash removed",
			in:   "Show [ABCDEF12] 05",
			want: " Show   05 ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCandidate(tt.in))
		})
	}
}

func TestStripShowName(t *testing.T) {
	ctx := context.Background()

	t.Run("literal occurrence", func(t *testing.T) {
		got := stripShowName(ctx, " The Office S02 ", "The Office")
		assert.NotContains(t, got, "Office")
		assert.Contains(t, got, "S02")
	})

	t.Run("delimiter tolerant", func(t *testing.T) {
		got := stripShowName(ctx, " The.Office.S02 ", "The Office")
		assert.NotContains(t, got, "Office")
		assert.Contains(t, got, "S02")
	})

	t.Run("empty show name is a no-op", func(t *testing.T) {
		in := " Whatever S01 "
		assert.Equal(t, in, stripShowName(ctx, in, ""))
	})

	t.Run("preceding season letter blocks the strip", func(t *testing.T) {
		// an S directly before the title means the title text is part of a
		// marker, not the show name
		got := stripShowName(ctx, " sThe Office ", "The Office")
		assert.Contains(t, got, "Office")
	})
}

func TestIsDiscFile(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"VIDEO_TS.IFO", true},
		{"video_ts.vob", true},
		{"VTS_01_1.VOB", true},
		{"index.bdmv", true},
		{"MovieObject.bdmv", true},
		{"00001.m2ts", true},
		{"some/dir/00055.mpls", true},
		{"Show.S01E01.mkv", false},
		{"VTS_extra.mkv", false},
	}
	for _, tt := range tests {
		if got := isDiscFile(tt.in); got != tt.want {
			t.Errorf("isDiscFile(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAddEpisode(t *testing.T) {
	r := NewMatchResult("test")
	r.AddEpisode(5)
	r.AddEpisode(3)
	r.AddEpisode(5)
	assert.Equal(t, []int{5, 3}, r.Episodes)

	r.sortEpisodes()
	assert.Equal(t, []int{3, 5}, r.Episodes)
}

func TestMatchResultString(t *testing.T) {
	r := NewMatchResult("test")
	r.Season = 2
	r.AddEpisode(5)
	r.CleanedName = "Test Show"

	s := r.String()
	assert.True(t, strings.Contains(s, "season: 2"), s)
	assert.True(t, strings.Contains(s, "05"), s)
}
