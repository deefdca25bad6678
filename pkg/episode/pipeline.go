package episode

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/recognarr/recognarr/pkg/logger"
)

// pathSeparators flattens both POSIX and Windows separators into plain
// delimiters before pattern matching.
var pathSeparators = strings.NewReplacer("/", " ", "\\", " ")

// stripExtension removes a trailing media file extension.
func stripExtension(s string) string {
	return extensionRegex.ReplaceAllString(s, "")
}

// normalizeCandidate prepares a raw string for the cascade: the extension,
// bracketed years and release-group hashes go away and the ends are padded so
// delimiter-anchored patterns can match at the boundaries.
func normalizeCandidate(s string) string {
	s = stripExtension(s)
	s = pathSeparators.Replace(s)
	s = yearBracketRegex.ReplaceAllString(s, " ")
	s = hashBracketRegex.ReplaceAllString(s, " ")
	return " " + s + " "
}

// parseNumber is the guarded numeric conversion used by every stage. A failed
// conversion is a non-match, never an error.
func parseNumber(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// runPipeline applies the ordered cascade to a basename plus an optional
// folder component and returns a populated result. Stages run in strict
// priority order; most only run while their target field is still unset.
func runPipeline(ctx context.Context, base, folder, showName, fileName string) *MatchResult {
	log := logger.FromCtx(ctx)

	r := NewMatchResult(stripExtension(base))

	b := normalizeCandidate(base)
	f := ""
	if folder != "" {
		f = normalizeCandidate(folder)
	}

	if stackingRegex.MatchString(b) {
		r.StackingMarkerFound = true
	}

	// 1. Long, localized season marker. The matched token is stripped so its
	// digits cannot be re-read as an episode number downstream.
	b, f = applyLongSeason(r, b, f)

	// 2. SxxEyy(Ezz...) multi-episode runs.
	applyMultiEpisode(ctx, r, b)
	if f != "" {
		applyMultiEpisode(ctx, r, f)
	}

	// 3. Alternate NxMM(xNN...) form.
	applyMultiEpisodeAlt(ctx, r, b)

	// 4. Short episode family, only while no episode is known.
	if !r.HasEpisodes() {
		applyShortEpisodeFamily(r, b)
	}

	// 5. Short season marker, gated on a folder component being present.
	if !r.HasSeason() && f != "" {
		b, f = applyShortSeason(r, b, f)
	}

	// 6. Anything found already ends the cascade.
	if r.HasEpisodes() {
		postClean(r)
		return r
	}

	// 7. The show title is noise from here on.
	b = stripShowName(ctx, b, showName)
	if f != "" {
		f = stripShowName(ctx, f, showName)
	}

	// 8. Roman numeral "Part N".
	if !r.HasEpisodes() {
		if m := romanPartRegex.FindStringSubmatch(b); m != nil {
			if v := DecodeRoman(m[1]); v > 0 {
				r.AddEpisode(v)
			}
		}
	}

	// 9. Date. A dated episode is assumed to carry no numeric episode, so the
	// cascade ends here. The leading digit group lands in Season as well;
	// daily shows conventionally use the year as the season.
	if applyDate(r, b) || (f != "" && applyDate(r, f)) {
		postClean(r)
		return r
	}

	// 10. Structural DVD/Blu-ray files never get generic numeric fallbacks.
	if isDiscFile(fileName) {
		log.Debugw("disc structural file, skipping numeric fallback", "file", fileName)
		postClean(r)
		return r
	}

	// 11. Short season retry.
	if !r.HasSeason() {
		b, f = applyShortSeason(r, b, f)
	}

	// 12. Short episode retry.
	if !r.HasEpisodes() {
		if m := shortEpisodeRegex.FindStringSubmatch(b); m != nil {
			if ep, ok := parseNumber(m[1]); ok {
				r.AddEpisode(ep)
			}
		}
	}

	// 13. Generic numeric fallback, the lowest-confidence stage.
	if !r.HasEpisodes() {
		applyGenericNumbers(r, b)
	}

	postClean(r)
	return r
}

func applyLongSeason(r *MatchResult, b, f string) (string, string) {
	matched := false
	if m := longSeasonRegex.FindStringSubmatch(b); m != nil {
		if n, ok := parseNumber(m[1]); ok {
			if !r.HasSeason() {
				r.Season = n
			}
			matched = true
		}
	}
	if !matched && f != "" {
		if m := longSeasonRegex.FindStringSubmatch(f); m != nil {
			if n, ok := parseNumber(m[1]); ok {
				if !r.HasSeason() {
					r.Season = n
				}
				matched = true
			}
		}
	}
	if matched {
		b = longSeasonRegex.ReplaceAllString(b, " ")
		if f != "" {
			f = longSeasonRegex.ReplaceAllString(f, " ")
		}
	}
	return b, f
}

// applyMultiEpisode collects every episode number grouped under one season
// marker. A match whose season conflicts with an already-established season is
// discarded; multi-episode groups must share one season.
func applyMultiEpisode(ctx context.Context, r *MatchResult, s string) {
	log := logger.FromCtx(ctx)
	for _, m := range multiEpisodeRegex.FindAllStringSubmatch(s, -1) {
		season, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		if r.HasSeason() && r.Season != season {
			log.Debugw("discarding multi-episode match with conflicting season", "have", r.Season, "found", season)
			continue
		}

		eps := []int{}
		for _, d := range digitRunRegex.FindAllString(m[2], -1) {
			if ep, ok := parseNumber(d); ok {
				eps = append(eps, ep)
			}
		}
		if len(eps) == 0 {
			continue
		}

		r.Season = season
		for _, ep := range eps {
			r.AddEpisode(ep)
		}
	}
}

// altSeasonLimit and altEpisodeLimit keep resolution strings such as
// "1920x1080" from being read as season/episode pairs.
const (
	altSeasonLimit  = 199
	altEpisodeLimit = 999
)

func applyMultiEpisodeAlt(ctx context.Context, r *MatchResult, s string) {
	log := logger.FromCtx(ctx)
	for _, m := range multiEpisodeAltRegex.FindAllStringSubmatch(s, -1) {
		season, ok := parseNumber(m[1])
		if !ok || season > altSeasonLimit {
			continue
		}
		if r.HasSeason() && r.Season != season {
			log.Debugw("discarding NxMM match with conflicting season", "have", r.Season, "found", season)
			continue
		}

		eps := []int{}
		for _, d := range digitRunRegex.FindAllString(m[2], -1) {
			if ep, ok := parseNumber(d); ok && ep <= altEpisodeLimit {
				eps = append(eps, ep)
			}
		}
		if len(eps) == 0 {
			continue
		}

		r.Season = season
		for _, ep := range eps {
			r.AddEpisode(ep)
		}
	}
}

// applyShortEpisodeFamily tries the "(n/m)" episode-of-total form first, then
// the literal episode word. The slash form requires n <= m.
func applyShortEpisodeFamily(r *MatchResult, s string) {
	if m := episodeSlashRegex.FindStringSubmatch(s); m != nil {
		n, okN := parseNumber(m[1])
		total, okM := parseNumber(m[2])
		if okN && okM && n <= total {
			r.AddEpisode(n)
			return
		}
	}

	if m := episodeWordRegex.FindStringSubmatch(s); m != nil {
		if ep, ok := parseNumber(m[1]); ok {
			r.AddEpisode(ep)
		}
	}
}

func applyShortSeason(r *MatchResult, b, f string) (string, string) {
	if m := shortSeasonRegex.FindStringSubmatch(b); m != nil {
		if n, ok := parseNumber(m[1]); ok {
			r.Season = n
			b = strings.Replace(b, m[0], " ", 1)
			return b, f
		}
	}
	if f != "" {
		if m := shortSeasonRegex.FindStringSubmatch(f); m != nil {
			if n, ok := parseNumber(m[1]); ok {
				r.Season = n
				f = strings.Replace(f, m[0], " ", 1)
			}
		}
	}
	return b, f
}

// stripShowName removes literal occurrences of the show title, then a
// delimiter-tolerant variant where spaces, dots, dashes and underscores are
// interchangeable. The title must not be preceded by an S or E so season and
// episode letters survive. Dynamic compilation failures skip the stage.
func stripShowName(ctx context.Context, s, showName string) string {
	showName = strings.TrimSpace(showName)
	if showName == "" {
		return s
	}
	log := logger.FromCtx(ctx)

	literal := `(?i)([^se]|^)` + regexp.QuoteMeta(showName)
	if re, err := regexp.Compile(literal); err == nil {
		s = re.ReplaceAllString(s, "${1} ")
	} else {
		log.Debugw("skipping literal show name strip", "error", err)
	}

	parts := splitOnDelimiters(showName)
	if len(parts) > 1 {
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		tolerant := `(?i)([^se]|^)` + strings.Join(parts, delim+`+`)
		if re, err := regexp.Compile(tolerant); err == nil {
			s = re.ReplaceAllString(s, "${1} ")
		} else {
			log.Debugw("skipping delimiter-tolerant show name strip", "error", err)
		}
	}

	return s
}

// applyDate recognizes YYYY-MM-DD first, then MM-DD-YYYY. On a match the
// leading digit group is also stored as the season.
func applyDate(r *MatchResult, s string) bool {
	if m := dateYMDRegex.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			r.Date = d
			if n, ok := parseNumber(m[1]); ok && !r.HasSeason() {
				r.Season = n
			}
			return true
		}
	}

	if m := dateMDYRegex.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(m[3], m[1], m[2]); ok {
			r.Date = d
			if n, ok := parseNumber(m[1]); ok && !r.HasSeason() {
				r.Season = n
			}
			return true
		}
	}

	return false
}

// parseDateOnly fills the date without touching the season.
func parseDateOnly(r *MatchResult, s string) {
	if m := dateYMDRegex.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			r.Date = d
			return
		}
	}
	if m := dateMDYRegex.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(m[3], m[1], m[2]); ok {
			r.Date = d
		}
	}
}

func makeDate(year, month, day string) (time.Time, bool) {
	y, okY := parseNumber(year)
	m, okM := parseNumber(month)
	d, okD := parseNumber(day)
	if !okY || !okM || !okD {
		return time.Time{}, false
	}
	if y < 1900 || y > 2100 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

// applyGenericNumbers is the last-resort stage: split the candidate on
// delimiters, keep purely numeric tokens, and read them rightmost-first as
// SSEE, SEE, or bare episode numbers.
func applyGenericNumbers(r *MatchResult, s string) {
	stripped := bracketGroupRegex.ReplaceAllString(s, " ")
	tokens := []string{}
	for _, t := range splitOnDelimiters(stripped) {
		if isASCIIDigits(t) {
			tokens = append(tokens, t)
		}
	}

	// Nothing outside the brackets: mine digit runs inside them instead.
	if len(tokens) == 0 {
		for _, g := range bracketGroupRegex.FindAllString(s, -1) {
			tokens = append(tokens, digitRunRegex.FindAllString(g, -1)...)
		}
	}

	// Rightmost tokens are the most specific; episode numbers tend to trail.
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}

	// SSEE needs the already-known season to confirm the prefix, otherwise
	// arbitrary 4-digit numbers such as years would slip through.
	for _, t := range tokens {
		if len(t) != 4 {
			continue
		}
		season, okS := parseNumber(t[:2])
		ep, okE := parseNumber(t[2:])
		if okS && okE && ep > 0 && r.HasSeason() && r.Season == season {
			r.AddEpisode(ep)
			return
		}
	}

	// SEE accumulates episodes across all 3-digit tokens sharing one season.
	matched := false
	for _, t := range tokens {
		if len(t) != 3 {
			continue
		}
		season, okS := parseNumber(t[:1])
		ep, okE := parseNumber(t[1:])
		if !okS || !okE || ep <= 0 {
			continue
		}
		if r.HasSeason() && r.Season != season {
			continue
		}
		r.Season = season
		r.AddEpisode(ep)
		matched = true
	}
	if matched {
		return
	}

	for _, t := range tokens {
		if len(t) != 2 {
			continue
		}
		if ep, ok := parseNumber(t); ok && ep > 0 {
			r.AddEpisode(ep)
			return
		}
	}

	for _, t := range tokens {
		if len(t) != 1 {
			continue
		}
		if ep, ok := parseNumber(t); ok && ep > 0 {
			r.AddEpisode(ep)
			return
		}
	}
}

func splitOnDelimiters(s string) []string {
	return strings.FieldsFunc(s, func(c rune) bool {
		switch c {
		case ' ', '\t', '|', '_', '.', '-':
			return true
		}
		return false
	})
}

// postClean derives the human-readable title from the raw name by stripping
// every structural pattern, then sorts the episode list.
func postClean(r *MatchResult) {
	cleaned := " " + pathSeparators.Replace(r.Name) + " "
	for _, re := range cleanupRegexes {
		cleaned = re.ReplaceAllString(cleaned, " ")
	}

	fields := []string{}
	for _, f := range splitOnDelimiters(cleaned) {
		if isASCIIDigits(f) {
			continue
		}
		fields = append(fields, f)
	}
	r.CleanedName = strings.Trim(strings.Join(fields, " "), " .-_")

	r.sortEpisodes()
}
