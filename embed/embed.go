// Package embed guards chart embed fragments while the editor markup is being
// transformed. Fragments are swapped for numbered placeholder tokens before
// any block or inline rule runs and swapped back verbatim afterwards.
package embed

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/yuin/goldmark/util"
	xhtml "golang.org/x/net/html"
)

const (
	placeholderPrefix = "__CHART_"
	placeholderSuffix = "__"
)

var (
	fragmentPattern = regexp.MustCompile(
		`(?is)<div\s[^>]*\bclass\s*=\s*(?:"[^"]*\bchart-container\b[^"]*"|'[^']*\bchart-container\b[^']*')[^>]*>` +
			`.*?<iframe\s[^>]*\bsrc\s*=\s*(?:"[^"]*"|'[^']*')[^>]*>.*?</iframe>.*?</div>`,
	)
	placeholderPattern = regexp.MustCompile(`__CHART_(\d+)__`)

	iframeSelector = cascadia.MustCompile("div.chart-container iframe[src]")
)

// Descriptor is what the embed dialog collects from the user.
type Descriptor struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Fragment renders the canonical embed markup for d.
func Fragment(d Descriptor) string {
	var sb strings.Builder
	sb.WriteString(`<div class="chart-container"><iframe src="`)
	sb.WriteString(EscapeAttr(d.URL))
	sb.WriteString(`" title="`)
	sb.WriteString(EscapeAttr(d.Title))
	sb.WriteString(`" width="100%" height="400" frameborder="0" allowfullscreen></iframe></div>`)
	return sb.String()
}

// EscapeAttr escapes value for use inside a double-quoted attribute.
func EscapeAttr(value string) string {
	return string(util.EscapeHTML([]byte(value)))
}

// Placeholder returns the token that stands in for the fragment at index.
func Placeholder(index int) string {
	return placeholderPrefix + strconv.Itoa(index) + placeholderSuffix
}

// Protect replaces every embed fragment in text with a placeholder token, in
// order of appearance. The returned slice holds the original fragments so
// Restore can put them back. Indices already used by placeholder-shaped text
// in the input are skipped and left as empty entries, so literal text is never
// mistaken for an embed.
func Protect(text string) (string, []string) {
	taken := literalIndices(text)
	var fragments []string
	guarded := fragmentPattern.ReplaceAllStringFunc(text, func(match string) string {
		for taken[len(fragments)] {
			fragments = append(fragments, "")
		}
		token := Placeholder(len(fragments))
		fragments = append(fragments, match)
		return token
	})
	return guarded, fragments
}

// Restore substitutes placeholder tokens in text with their fragments in a
// single pass. Placeholders removed from text are dropped without complaint;
// tokens that name no protected fragment stay as they are.
func Restore(text string, fragments []string) string {
	if len(fragments) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		if fragment, ok := fragmentFor(match, fragments); ok {
			return fragment
		}
		return match
	})
}

// HasPlaceholderText reports whether text already contains something shaped
// like a placeholder token before protection.
func HasPlaceholderText(text string) bool {
	return placeholderPattern.MatchString(text)
}

// IsPlaceholder reports whether s is exactly one token standing for one of
// fragments.
func IsPlaceholder(s string, fragments []string) bool {
	loc := placeholderPattern.FindStringIndex(s)
	if loc == nil || loc[0] != 0 || loc[1] != len(s) {
		return false
	}
	_, ok := fragmentFor(s, fragments)
	return ok
}

// PadPlaceholders surrounds every token standing for one of fragments with
// newlines so the fragment ends up on a line of its own. Other
// placeholder-shaped text is left alone.
func PadPlaceholders(text string, fragments []string) string {
	if len(fragments) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		if _, ok := fragmentFor(match, fragments); ok {
			return "\n" + match + "\n"
		}
		return match
	})
}

func literalIndices(text string) map[int]bool {
	taken := make(map[int]bool)
	for _, match := range placeholderPattern.FindAllString(text, -1) {
		if index, ok := placeholderIndex(match); ok {
			taken[index] = true
		}
	}
	return taken
}

func fragmentFor(token string, fragments []string) (string, bool) {
	index, ok := placeholderIndex(token)
	if !ok || index >= len(fragments) || fragments[index] == "" {
		return "", false
	}
	return fragments[index], true
}

func placeholderIndex(token string) (int, bool) {
	digits := strings.TrimSuffix(strings.TrimPrefix(token, placeholderPrefix), placeholderSuffix)
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// Describe recovers the descriptor carried by an embed fragment.
func Describe(fragment string) (Descriptor, bool) {
	doc, err := xhtml.Parse(strings.NewReader(fragment))
	if err != nil {
		return Descriptor{}, false
	}

	for _, iframe := range iframeSelector.MatchAll(doc) {
		src := attr(iframe, "src")
		if src == "" {
			continue
		}
		return Descriptor{URL: src, Title: attr(iframe, "title")}, true
	}
	return Descriptor{}, false
}

// Describes maps fragments to descriptors, skipping any that do not parse.
func Describes(fragments []string) []Descriptor {
	var out []Descriptor
	for _, fragment := range fragments {
		if d, ok := Describe(fragment); ok {
			out = append(out, d)
		}
	}
	return out
}

func attr(node *xhtml.Node, key string) string {
	for _, a := range node.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
