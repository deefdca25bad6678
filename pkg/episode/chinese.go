package episode

import (
	"regexp"
	"strconv"
)

// chineseNumerals covers the single-character numerals 一 through 十.
// Compound numerals such as 十一 (11) are intentionally not supported.
var chineseNumerals = map[string]int{
	"一": 1,
	"二": 2,
	"三": 3,
	"四": 4,
	"五": 5,
	"六": 6,
	"七": 7,
	"八": 8,
	"九": 9,
	"十": 10,
}

// ChineseToInt converts an ASCII digit string or a single CJK numeral to an
// integer. It returns -1 when the input is neither.
func ChineseToInt(s string) int {
	if s == "" {
		return -1
	}

	if isASCIIDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return -1
		}
		return n
	}

	if v, ok := chineseNumerals[s]; ok {
		return v
	}

	return -1
}

func isASCIIDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

const cjkNumClass = `[0-9一二三四五六七八九十]`

var (
	chSeasonEpisodeRegex = regexp.MustCompile(`第(` + cjkNumClass + `{1,4})季\s*第(` + cjkNumClass + `{1,4})集`)
	chEpisodeRegex       = regexp.MustCompile(`第(` + cjkNumClass + `{1,4})集`)
	chBareEpisodeRegex   = regexp.MustCompile(`(?:^|[^0-9])(\d{1,3})集`)
	chPartRegex          = regexp.MustCompile(`第(` + cjkNumClass + `{1,4})部分?`)
	chChapterRegex       = regexp.MustCompile(`第(` + cjkNumClass + `{1,4})章`)
	chSeasonRegex        = regexp.MustCompile(`第(` + cjkNumClass + `{1,4})季`)
)

// bareEpisodeLimit bounds the digit-only "X集" form to avoid treating large
// numbers such as bitrates as episode numbers.
const bareEpisodeLimit = 999

// ParseChinese runs the Chinese-format pattern family directly against a raw
// filename. Forms are tried from most to least specific, stopping at the first
// one that yields anything.
func ParseChinese(filename string) *MatchResult {
	name := stripExtension(filename)
	r := NewMatchResult(name)

	if m := chSeasonEpisodeRegex.FindStringSubmatch(name); m != nil {
		if season := ChineseToInt(m[1]); season >= 0 {
			if ep := ChineseToInt(m[2]); ep >= 0 {
				r.Season = season
				r.AddEpisode(ep)
				return finishChinese(r)
			}
		}
	}

	if m := chEpisodeRegex.FindStringSubmatch(name); m != nil {
		if ep := ChineseToInt(m[1]); ep >= 0 {
			r.AddEpisode(ep)
			return finishChinese(r)
		}
	}

	if m := chBareEpisodeRegex.FindStringSubmatch(name); m != nil {
		if ep := ChineseToInt(m[1]); ep >= 0 && ep <= bareEpisodeLimit {
			r.AddEpisode(ep)
			return finishChinese(r)
		}
	}

	if m := chPartRegex.FindStringSubmatch(name); m != nil {
		if ep := ChineseToInt(m[1]); ep >= 0 {
			r.AddEpisode(ep)
			return finishChinese(r)
		}
	}

	if m := chChapterRegex.FindStringSubmatch(name); m != nil {
		if ep := ChineseToInt(m[1]); ep >= 0 {
			r.AddEpisode(ep)
			return finishChinese(r)
		}
	}

	// Roman numeral in the title is the last resort before season-only.
	if m := romanPartRegex.FindStringSubmatch(" " + name + " "); m != nil {
		if ep := DecodeRoman(m[1]); ep > 0 {
			r.AddEpisode(ep)
			return finishChinese(r)
		}
	}

	if m := chSeasonRegex.FindStringSubmatch(name); m != nil {
		if season := ChineseToInt(m[1]); season >= 0 {
			r.Season = season
			return finishChinese(r)
		}
	}

	return finishChinese(r)
}

func finishChinese(r *MatchResult) *MatchResult {
	if r.HasEpisodes() && !r.HasSeason() {
		r.Season = 1
	}
	postClean(r)
	return r
}
