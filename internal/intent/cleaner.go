package intent

import (
	"regexp"
	"strings"
)

// fillerReplacer strips politeness and filler tokens that carry no
// routing information ("请帮我导航到..." and friends).
var fillerReplacer = strings.NewReplacer(
	"请", "",
	"帮", "",
	"我", "",
	"麻烦", "",
	"一下", "",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean strips filler tokens, collapses whitespace runs to single
// spaces and trims the result. It is pure, total and idempotent:
// Clean(Clean(s)) == Clean(s) for any s.
func Clean(text string) string {
	text = fillerReplacer.Replace(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
