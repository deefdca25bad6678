package episode

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestParseSnapshot pins the full output for a spread of real-world release
// names so regex tweaks cannot silently shift unrelated results.
func TestParseSnapshot(t *testing.T) {
	ctx := context.Background()

	paths := []string{
		"Breaking.Bad.S05E14.Ozymandias.1080p.mkv",
		"The Wire - 3x08 - Moral Midgetry.avi",
		"Show Name/Season 4/Show Name - 07 - Title.mkv",
		"[HorribleSubs] Tower of God - 05 [ABCDEF12].mkv",
		"[Grp] Some Show OVA 2 [AABBCCDD].mkv",
		"The.Daily.Show.2021-03-15.Guest.mp4",
		"Show.S01E01-02.Pilot.mkv",
		"Documentary Part III.mkv",
		"Series 2021 0104.mkv",
		"VIDEO_TS/VTS_02_1.VOB",
	}

	var sb strings.Builder
	for _, p := range paths {
		r := Parse(ctx, p, "")
		fmt.Fprintf(&sb, "%s\n  %s\n", p, r)
	}

	snaps.MatchSnapshot(t, sb.String())
}
