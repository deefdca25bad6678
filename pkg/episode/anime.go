package episode

import "regexp"

// Anime releases follow their own conventions: a [SubGroup] prefix, Special/OVA
// markers, and bare episode runs bounded by a trailing 8-hex release hash
// (prepend family) or by end-of-string (append family).
var (
	animeGroupPrefixRegex = regexp.MustCompile(`^\s*\[[^\]]+\]`)

	animeSpecialRegex = regexp.MustCompile(`(?i)(?:^|[\s._\-\[\(])(?:specials?|ova|oad|sp)[\s._\-\]\)]*(\d{1,4})?(?:[\s._\-\]\)]|$)`)

	animeSeasonDirRegex = regexp.MustCompile(`(?i)(?:^|[/\\])[^/\\]*season[\s._-]?(\d{1,4})[^/\\]*[/\\]`)

	animeInlineSeasonRegex = regexp.MustCompile(`(?i)[\s._\-\[\(]s(\d{1,4})(?:[\s._-]?(?:e|ep)(\d{1,4}))?`)

	animeHashEpisodeRegex = regexp.MustCompile(`(?i)[\s._-](\d{1,4}(?:[\s._-]+\d{1,4})*)[\s._-]*\[[0-9a-fA-F]{8}\]`)

	animeAppendSpecialRegex = regexp.MustCompile(`(?i)[\s._\-\[\(](?:specials?|ova|oad|sp)[\s._-]*(\d{1,4})?\s*$`)

	animeAppendSeasonRegex = regexp.MustCompile(`(?i)[\s._\-\[\(]s(\d{1,4})\s*$`)

	animeAppendEpisodeRegex = regexp.MustCompile(`(?i)[\s._-](\d{1,4}(?:[\s._-]+\d{1,4})*)\s*$`)
)

// isAnimeStyle gates the anime-exclusive pass on the release-group bracket
// prefix so ordinary filenames never take the anime shortcut.
func isAnimeStyle(base string) bool {
	return animeGroupPrefixRegex.MatchString(base)
}

// animePrePass applies the four prepend variants in strict priority order
// against the extension-stripped relative path. It returns nil unless at
// least one episode was found; a pre-pass without episodes never wins.
func animePrePass(full string) *MatchResult {
	r := NewMatchResult("")

	// 1. Special/OVA marker forces season 0.
	if m := animeSpecialRegex.FindStringSubmatch(full); m != nil {
		r.Season = 0
		if m[1] != "" {
			if ep, ok := parseNumber(m[1]); ok {
				r.AddEpisode(ep)
			}
		}
	}

	// 2. Season-bearing directory segment.
	if !r.HasSeason() {
		if m := animeSeasonDirRegex.FindStringSubmatch(full); m != nil {
			if n, ok := parseNumber(m[1]); ok {
				r.Season = n
			}
		}
	}

	// 3. Inline season marker, optionally carrying an episode.
	if !r.HasSeason() {
		if m := animeInlineSeasonRegex.FindStringSubmatch(full); m != nil {
			if n, ok := parseNumber(m[1]); ok {
				r.Season = n
			}
			if m[2] != "" {
				if ep, ok := parseNumber(m[2]); ok {
					r.AddEpisode(ep)
				}
			}
		}
	}

	// 4. Bare episode run bounded by the trailing release hash. A secondary
	// split picks up every number in runs like "12-13-14".
	if !r.HasEpisodes() {
		if m := animeHashEpisodeRegex.FindStringSubmatch(full); m != nil {
			for _, d := range digitRunRegex.FindAllString(m[1], -1) {
				if ep, ok := parseNumber(d); ok {
					r.AddEpisode(ep)
				}
			}
		}
	}

	if !r.HasEpisodes() {
		return nil
	}
	return r
}

// animeAppendPass mirrors the prepend family anchored to end-of-string and
// only fills fields that are still unset.
func animeAppendPass(r *MatchResult, full string) {
	if !r.HasSeason() {
		if m := animeAppendSpecialRegex.FindStringSubmatch(full); m != nil {
			r.Season = 0
			if m[1] != "" && !r.HasEpisodes() {
				if ep, ok := parseNumber(m[1]); ok {
					r.AddEpisode(ep)
				}
			}
		}
	}

	if !r.HasSeason() {
		if m := animeAppendSeasonRegex.FindStringSubmatch(full); m != nil {
			if n, ok := parseNumber(m[1]); ok {
				r.Season = n
			}
		}
	}

	if !r.HasEpisodes() {
		if m := animeAppendEpisodeRegex.FindStringSubmatch(full); m != nil {
			for _, d := range digitRunRegex.FindAllString(m[1], -1) {
				if ep, ok := parseNumber(d); ok {
					r.AddEpisode(ep)
				}
			}
		}
	}
}
