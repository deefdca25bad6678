package episode

import (
	"context"
	"path"
	"strings"

	"github.com/recognarr/recognarr/pkg/logger"
)

// Parse determines which season and episode(s) a relative media path
// represents. It never fails: absence of information is reported through the
// sentinel season and an empty episode list.
func Parse(ctx context.Context, relativePath, showName string) *MatchResult {
	log := logger.FromCtx(ctx)

	norm := strings.ReplaceAll(relativePath, "\\", "/")
	norm = strings.Trim(norm, "/")
	if norm == "" {
		return NewMatchResult("")
	}

	// The "(n/m)" episode-of-total form carries a slash, which path splitting
	// would otherwise tear apart. Lift it off the raw path first; it only
	// applies when no higher-confidence stage finds an episode.
	slashEp, hasSlashEp := 0, false
	if m := episodeSlashRegex.FindStringSubmatch(norm); m != nil {
		n, okN := parseNumber(m[1])
		total, okT := parseNumber(m[2])
		if okN && okT && n <= total {
			slashEp, hasSlashEp = n, true
			norm = strings.Replace(norm, m[0], " ", 1)
		}
	}

	base := path.Base(norm)
	dir := path.Dir(norm)
	if dir == "." {
		dir = ""
	}

	full := stripExtension(norm)

	// Anime-exclusive pre-pass. When the release carries a [SubGroup] prefix
	// and the prepend family finds an episode, it wins outright and the
	// two-phase pass is skipped entirely.
	if isAnimeStyle(base) {
		if r := animePrePass(full); r != nil {
			log.Debugw("anime pre-pass matched", "path", relativePath, "season", r.Season, "episodes", r.Episodes)
			r.Name = stripExtension(base)
			parseDateOnly(r, normalizeCandidate(base))
			return finalize(r)
		}
	}

	// Phase one: the filename component alone.
	r := runPipeline(ctx, base, "", showName, base)

	switch {
	case r.HasEpisodes() && !r.HasSeason():
		// Phase two: the whole relative path. Its season is authoritative only
		// when it agrees on the episode count; a folder holding many files
		// must not corrupt a single file's result.
		second := runPipeline(ctx, base, dir, showName, base)
		if second.HasSeason() && len(second.Episodes) == len(r.Episodes) {
			r = second
		} else {
			r.Season = second.Season
			animeAppendPass(r, full)
		}
	case !r.HasEpisodes() && !r.HasDate():
		// Nothing at all: retry against the whole path from scratch.
		retry := runPipeline(ctx, pathSeparators.Replace(full), dir, showName, base)
		retry.Name = stripExtension(base)
		r = retry
	}

	if hasSlashEp && !r.HasEpisodes() {
		r.AddEpisode(slashEp)
	}

	if !r.HasDate() {
		parseDateOnly(r, normalizeCandidate(norm))
	}

	return finalize(r)
}

// finalize applies the "assume season 1 when only an episode is known" rule
// and re-derives the cleaned name.
func finalize(r *MatchResult) *MatchResult {
	if r.HasEpisodes() && !r.HasSeason() && !containsSentinel(r.Episodes) {
		r.Season = 1
	}
	postClean(r)
	return r
}

func containsSentinel(eps []int) bool {
	for _, e := range eps {
		if e == Unset {
			return true
		}
	}
	return false
}
