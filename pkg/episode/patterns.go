package episode

import (
	"regexp"
	"strings"
)

// seasonWords lists the localized spellings of "season" matched by the long
// season marker. Spellings that are prefixes of others come after the longer
// forms so the whole word is consumed.
var seasonWords = []string{
	"season",
	"seizoen",
	"staffel",
	"saison",
	"stagione",
	"temporada",
	"sesong",
	"säsong",
	"sæson",
	"kausi",
	"sezóna",
	"sezonas",
	"sezonul",
	"sezona",
	"sezonu",
	"sezon",
	"séria",
	"évad",
	"сезон",
	"σεζόν",
	"موسم",
	"فصل",
	"시즌",
	"シーズン",
}

// delim is the delimiter class shared by most patterns: whitespace, dot,
// underscore and dash.
const delim = `[\s._-]`

// lead anchors a token to a word-boundary-like position so markers are not
// matched inside other words. Candidates are padded with spaces, so a match
// at the very start always sees a delimiter.
const lead = `[\s._\-\[\(]`

var (
	// Date patterns. Year-first wins over month-first.
	dateYMDRegex = regexp.MustCompile(`(\d{4})[.-](\d{1,2})[.-](\d{1,2})`)
	dateMDYRegex = regexp.MustCompile(`(\d{1,2})[.-](\d{1,2})[.-](\d{4})`)

	// Long season marker: a localized "season" word followed by 1-4 digits.
	longSeasonRegex = regexp.MustCompile(`(?i)` + lead + `(?:` + strings.Join(seasonWords, "|") + `)` + delim + `?(\d{1,4})`)

	// Short season/episode markers require a leading delimiter.
	shortSeasonRegex  = regexp.MustCompile(`(?i)` + lead + `s` + delim + `?(\d{1,4})`)
	shortEpisodeRegex = regexp.MustCompile(`(?i)` + lead + `(?:episode|ep|e)` + delim + `?(\d{1,4})`)

	// Multi-episode runs: SxxEyy[Ezz...], each episode number introduced by
	// its own marker character.
	multiEpisodeRegex = regexp.MustCompile(`(?i)` + lead + `s(\d{1,4})((?:` + delim + `*(?:ep|e|x|-)` + delim + `*\d{1,4})+)`)

	// Alternate multi-episode form: 1x02 or 1x02x03.
	multiEpisodeAltRegex = regexp.MustCompile(`(?i)(?:^|` + lead + `)(\d{1,4})x(\d{1,4}(?:[x._-]+\d{1,4})*)`)

	// "(n/m)" episode-of-total form and the literal episode word.
	episodeSlashRegex = regexp.MustCompile(`\((\d{1,4})\s*/\s*(\d{1,4})\)`)
	episodeWordRegex  = regexp.MustCompile(`(?i)` + lead + `(?:episode|ep)` + delim + `*(\d{1,4})`)

	// "Part XIV" style Roman numeral markers.
	romanPartRegex = regexp.MustCompile(`(?i)(?:^|` + delim + `)(?:part|pt)` + delim + `*([ivxlcdm]+)(?:` + delim + `|$)`)

	// Disc/part stacking markers such as "cd1" or "disc 2".
	stackingRegex = regexp.MustCompile(`(?i)` + delim + `(?:cd|dvd|disc|disk|part|pt)` + delim + `?(\d{1,2}|[a-d])(?:` + delim + `|$)`)

	// Bracketed noise removed during candidate normalization.
	yearBracketRegex = regexp.MustCompile(`[\[\(](?:19|20)\d{2}[\]\)]`)
	hashBracketRegex = regexp.MustCompile(`\[[0-9a-fA-F]{8}\]`)

	// Optional groups and digit runs used by the generic numeric fallback.
	bracketGroupRegex = regexp.MustCompile(`\[[^\]]*\]|\{[^}]*\}`)
	digitRunRegex     = regexp.MustCompile(`\d{1,4}`)

	// Known media file extensions stripped before parsing.
	extensionRegex = regexp.MustCompile(`(?i)\.(mkv|mp4|avi|m4v|mov|wmv|flv|webm|ts|m2ts|iso|mpg|mpeg|rmvb|vob|srt|ass|ssa|sub|idx)$`)
)

// cleanupRegexes are the structural patterns stripped from the raw name when
// deriving the cleaned, human-readable title.
var cleanupRegexes = []*regexp.Regexp{
	hashBracketRegex,
	yearBracketRegex,
	multiEpisodeRegex,
	multiEpisodeAltRegex,
	longSeasonRegex,
	episodeSlashRegex,
	episodeWordRegex,
	shortSeasonRegex,
	shortEpisodeRegex,
	dateYMDRegex,
	dateMDYRegex,
	stackingRegex,
	chSeasonEpisodeRegex,
	chEpisodeRegex,
	chPartRegex,
	chChapterRegex,
	chSeasonRegex,
}
