package extract

import (
	stdhtml "html"
	"regexp"
	"strings"
)

var (
	trailingSpacePattern = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
)

// normalize decodes character entities and tidies whitespace: no trailing
// blanks on any line, at most one empty line in a row, no empty lines at
// either end.
func normalize(text string) string {
	text = stdhtml.UnescapeString(text)
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = trailingSpacePattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.Trim(text, "\n")
}
