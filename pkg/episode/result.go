package episode

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Unset marks a season that no stage has determined yet. Season 0 is a real
// value (specials / OVA bucket) and must never be confused with Unset.
const Unset = -1

// MatchResult is the single output type of every recognition stage. Stages
// mutate the fields they own and leave the rest alone; a field set by an
// earlier, higher-confidence stage is never overwritten by a later one.
type MatchResult struct {
	Season              int       `json:"season"`
	Episodes            []int     `json:"episodes"`
	Date                time.Time `json:"date,omitzero"`
	Name                string    `json:"name"`
	CleanedName         string    `json:"cleanedName"`
	StackingMarkerFound bool      `json:"stackingMarkerFound"`
}

// NewMatchResult returns a fresh result for one detection attempt.
func NewMatchResult(name string) *MatchResult {
	return &MatchResult{
		Season:   Unset,
		Episodes: []int{},
		Name:     name,
	}
}

// AddEpisode appends ep unless it is already present.
func (r *MatchResult) AddEpisode(ep int) {
	for _, e := range r.Episodes {
		if e == ep {
			return
		}
	}
	r.Episodes = append(r.Episodes, ep)
}

func (r *MatchResult) HasSeason() bool { return r.Season > Unset }

func (r *MatchResult) HasEpisodes() bool { return len(r.Episodes) > 0 }

func (r *MatchResult) HasDate() bool { return !r.Date.IsZero() }

// IsComplete reports whether both a season and at least one episode were found.
func (r *MatchResult) IsComplete() bool { return r.HasSeason() && r.HasEpisodes() }

func (r *MatchResult) sortEpisodes() { sort.Ints(r.Episodes) }

func (r *MatchResult) String() string {
	eps := make([]string, len(r.Episodes))
	for i, e := range r.Episodes {
		eps[i] = fmt.Sprintf("%02d", e)
	}
	return fmt.Sprintf("season: %d, episodes: [%s], name: %q", r.Season, strings.Join(eps, " "), r.CleanedName)
}
