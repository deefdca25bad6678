package episode

import (
	"path"
	"regexp"
	"strings"
)

// discFileRegex recognizes DVD and Blu-ray structural files. These carry
// numbers that describe the disc layout, not episodes, so the generic numeric
// fallback never applies to them.
var discFileRegex = regexp.MustCompile(`(?i)^(?:video_ts(?:\.(?:ifo|bup|vob))?|vts_\d{1,2}_\d{1,2}(?:\.(?:ifo|bup|vob))?|index\.bdmv|movieobject\.bdmv|\d{5}\.(?:m2ts|mpls|clpi))$`)

func isDiscFile(name string) bool {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return discFileRegex.MatchString(base)
}
