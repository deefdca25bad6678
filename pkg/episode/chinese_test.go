package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChineseToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"一", 1},
		{"二", 2},
		{"五", 5},
		{"十", 10},
		{"3", 3},
		{"42", 42},
		{"", -1},
		{"abc", -1},
		// compound numerals are not supported
		{"十一", -1},
		{"二十", -1},
	}
	for _, tt := range tests {
		if got := ChineseToInt(tt.in); got != tt.want {
			t.Errorf("ChineseToInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseChinese(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		season   int
		episodes []int
	}{
		{
			name:     "combined season and episode",
			filename: "节目 第2季第10集.mkv",
			season:   2,
			episodes: []int{10},
		},
		{
			name:     "cjk numeral season and episode",
			filename: "第二季第五集.mp4",
			season:   2,
			episodes: []int{5},
		},
		{
			name:     "episode only defaults season",
			filename: "小明 第三集.mkv",
			season:   1,
			episodes: []int{3},
		},
		{
			name:     "bare digit episode",
			filename: "节目 12集.mkv",
			season:   1,
			episodes: []int{12},
		},
		{
			name:     "bare digit episode over the limit",
			filename: "节目 1080集.mkv",
			season:   Unset,
			episodes: []int{},
		},
		{
			name:     "part form",
			filename: "电影 第三部.mkv",
			season:   1,
			episodes: []int{3},
		},
		{
			name:     "chapter form",
			filename: "故事 第四章.mkv",
			season:   1,
			episodes: []int{4},
		},
		{
			name:     "roman part in the title",
			filename: "电影 Part IV.mkv",
			season:   1,
			episodes: []int{4},
		},
		{
			name:     "season only",
			filename: "节目 第三季.mkv",
			season:   3,
			episodes: []int{},
		},
		{
			name:     "nothing recognized",
			filename: "some plain name.mkv",
			season:   Unset,
			episodes: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseChinese(tt.filename)
			assert.Equal(t, tt.season, r.Season)
			assert.Equal(t, tt.episodes, r.Episodes)
		})
	}
}
