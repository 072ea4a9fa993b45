package render

import (
	"regexp"
	"strings"

	"github.com/rgonek/post-markup/embed"
)

const (
	// blockBoundary separates emitted units while inline stages run. Inline
	// spans never cross it; it is removed before output.
	blockBoundary = "\n"

	listOpenTag  = "<ul>"
	listCloseTag = "</ul>"
	lineBreakTag = "<br/>"
)

var (
	listItemPattern = regexp.MustCompile(`^\s*-\s+`)
	markupStart     = regexp.MustCompile(`^</?[A-Za-z]`)
)

type blockState int

const (
	outsideList blockState = iota
	insideList
)

// segmentBlocks turns source lines into block markup: consecutive list lines
// share one list container, plain lines are wrapped, blank lines become line
// breaks once something has been emitted. Units are joined by blockBoundary.
func (s *state) segmentBlocks(text string) string {
	if text == "" {
		return ""
	}

	var units []string
	current := outsideList
	emitted := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if loc := listItemPattern.FindStringIndex(line); loc != nil {
			if current == outsideList {
				units = append(units, listOpenTag)
				current = insideList
			}
			units = append(units, "<li>"+line[loc[1]:]+"</li>")
			emitted = true
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if emitted {
				units = append(units, lineBreakTag)
			}
			continue
		}

		if current == insideList {
			units = append(units, listCloseTag)
			current = outsideList
		}

		units = append(units, s.paragraph(line, trimmed))
		emitted = true
	}

	if current == insideList {
		units = append(units, listCloseTag)
	}

	return strings.Join(units, blockBoundary)
}

// paragraph wraps a plain line in the configured block tag. Lines that are
// already markup, or stand for an embed, pass through unwrapped.
func (s *state) paragraph(line, trimmed string) string {
	if markupStart.MatchString(trimmed) || embed.IsPlaceholder(trimmed, s.fragments) {
		return line
	}

	tag := string(s.config.BlockTag)
	return "<" + tag + ">" + line + "</" + tag + ">"
}
