package youtube

import (
	"regexp"
	"strings"
)

var (
	htmlTagRegex   = regexp.MustCompile(`<[^>]+>`)
	mentionRegex   = regexp.MustCompile(`@[^\s]+\s*`)
	zeroWidthRegex = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}]`)
	spaceRunRegex  = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes the HTML entities the comment API emits in
// textDisplay. CleanText applies it until the text stops changing.
var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

// CleanText normalizes raw comment text: decodes common entities, strips
// HTML tags, removes @-mentions and zero-width characters, collapses
// whitespace runs, and trims. Applying it twice yields the same result
// as applying it once. Decoding and tag-stripping repeat until stable so
// that even double-encoded input leaves nothing for a second application
// to find.
func CleanText(s string) string {
	for {
		next := entityReplacer.Replace(s)
		next = htmlTagRegex.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = mentionRegex.ReplaceAllString(s, "")
	s = zeroWidthRegex.ReplaceAllString(s, "")
	s = spaceRunRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
