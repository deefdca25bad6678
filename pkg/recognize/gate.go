package recognize

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/recognarr/recognarr/pkg/episode"
)

const (
	// DefaultThreshold is the minimum eligibility score for an AI call.
	DefaultThreshold = 0.5

	// maxFilenameLength skips pathological names the remote service would
	// struggle with anyway.
	maxFilenameLength = 150

	// minTitleLength below which the character-overlap heuristic is skipped.
	minTitleLength = 3
)

// nonEpisodeKeywords mark files that are not episodes at all, in the
// languages the recognizer supports.
var nonEpisodeKeywords = []string{
	"trailer",
	"teaser",
	"making of",
	"behind the scenes",
	"featurette",
	"interview",
	"opening",
	"ending",
	"ncop",
	"nced",
	"menu",
	"sample",
	"bande-annonce",
	"vorschau",
	"avance",
	"трейлер",
	"предпоказ",
	"予告",
	"예고",
	"预告",
	"花絮",
}

// extensionWeights reflect how often files with a given extension have
// historically been recognized successfully by the AI stage.
var extensionWeights = map[string]float64{
	".mkv":  0.9,
	".mp4":  0.8,
	".avi":  0.6,
	".m4v":  0.6,
	".wmv":  0.5,
	".ts":   0.4,
	".flv":  0.4,
	".rmvb": 0.4,
}

const defaultExtensionWeight = 0.5

// Gate decides whether the expected value of an AI call justifies making it.
type Gate struct {
	threshold float64
}

func NewGate(threshold float64) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gate{threshold: threshold}
}

// Eligible combines hard skip heuristics with a weighted score.
func (g *Gate) Eligible(filename, showTitle string, prior episode.MatchResult) bool {
	if utf8.RuneCountInString(filename) > maxFilenameLength {
		return false
	}

	lower := strings.ToLower(filename)
	for _, kw := range nonEpisodeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	// A filename sharing no characters at all with a non-trivial show title
	// is almost certainly unrelated to the show.
	if utf8.RuneCountInString(showTitle) >= minTitleLength && !sharesCharacters(lower, strings.ToLower(showTitle)) {
		return false
	}

	return g.Score(filename, showTitle, prior) >= g.threshold
}

// Score is the weighted sum of the extension's historical success rate, how
// badly traditional parsing failed, the filename's special-character
// complexity, and whether the title is absent from the filename.
func (g *Gate) Score(filename, showTitle string, prior episode.MatchResult) float64 {
	return extensionWeight(filename)*0.3 +
		failureDegree(prior)*0.4 +
		complexity(filename)*0.2 +
		titleAbsence(filename, showTitle)*0.1
}

func extensionWeight(filename string) float64 {
	ext := strings.ToLower(path.Ext(filename))
	if w, ok := extensionWeights[ext]; ok {
		return w
	}
	return defaultExtensionWeight
}

func failureDegree(prior episode.MatchResult) float64 {
	switch {
	case prior.IsComplete():
		return 0
	case prior.HasSeason() || prior.HasEpisodes() || prior.HasDate():
		return 0.5
	default:
		return 1
	}
}

func complexity(filename string) float64 {
	total := 0
	special := 0
	for _, c := range filename {
		total++
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != ' ' {
			special++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(special) / float64(total)
}

func titleAbsence(filename, showTitle string) float64 {
	showTitle = strings.TrimSpace(showTitle)
	if showTitle == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(filename), strings.ToLower(showTitle)) {
		return 0
	}
	return 1
}

func sharesCharacters(a, b string) bool {
	set := map[rune]struct{}{}
	for _, c := range a {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			set[unicode.ToLower(c)] = struct{}{}
		}
	}
	for _, c := range b {
		if _, ok := set[unicode.ToLower(c)]; ok {
			return true
		}
	}
	return false
}
