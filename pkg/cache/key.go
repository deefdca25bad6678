package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stage prefixes kept in plaintext at the front of every key so selective
// clearing can tell AI-produced entries apart.
const (
	PrefixTraditional = "traditional"
	PrefixAI          = "ai"
	PrefixHybrid      = "hybrid"
)

// maxKeyInput bounds the normalized input fed to the hash so pathological
// filenames cannot produce unbounded work.
const maxKeyInput = 512

// keyTransformer applies canonical composition and drops control and other
// invisible runes that make visually equal filenames compare unequal.
var keyTransformer = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.C)))

// Key derives a stable, collision-resistant cache key from a stage prefix, a
// filename, and an optional show name. When normalization fails the key
// degrades to a plain bounded hex encoding, which stays unique per input.
func Key(prefix, filename, showName string) string {
	joined := truncate(filename) + "\x1f" + truncate(showName)

	normalized, _, err := transform.String(keyTransformer, joined)
	if err != nil {
		return prefix + ":raw-" + hex.EncodeToString([]byte(joined))
	}

	sum := sha256.Sum256([]byte(normalized))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

func truncate(s string) string {
	if len(s) <= maxKeyInput {
		return s
	}

	// Cut on a rune boundary.
	cut := maxKeyInput
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
