package render

import (
	"strings"

	"github.com/rgonek/post-markup/embed"
)

// Stage names one inline conversion pass. Stages run in declared order; each
// one assumes the stages before it have already run.
type Stage int

const (
	// StageBold must precede StageItalic so the outer asterisks of a bold
	// span are never read as two italics.
	StageBold Stage = iota
	StageItalic
	// StageImage must precede StageLink: image syntax is link syntax with a
	// leading "!".
	StageImage
	StageLink
)

func (st Stage) String() string {
	switch st {
	case StageBold:
		return "bold"
	case StageItalic:
		return "italic"
	case StageImage:
		return "image"
	case StageLink:
		return "link"
	default:
		return "unknown"
	}
}

type inlineStage struct {
	stage   Stage
	convert func(s *state, text string) string
}

var inlinePipeline = []inlineStage{
	{StageBold, (*state).convertBold},
	{StageItalic, (*state).convertItalic},
	{StageImage, (*state).convertImages},
	{StageLink, (*state).convertLinks},
}

// Stages returns the inline stages in the order they are applied.
func Stages() []Stage {
	stages := make([]Stage, 0, len(inlinePipeline))
	for _, entry := range inlinePipeline {
		stages = append(stages, entry.stage)
	}
	return stages
}

func (s *state) convertInline(text string) string {
	for _, entry := range inlinePipeline {
		text = entry.convert(s, text)
	}
	return text
}

// convertBold rewrites **text** spans where text holds no asterisk or
// newline.
func (s *state) convertBold(text string) string {
	if !strings.Contains(text, "**") {
		return text
	}

	var sb strings.Builder
	last := 0
	for i := 0; i+1 < len(text); {
		if text[i] != '*' || text[i+1] != '*' {
			i++
			continue
		}

		end := indexStop(text, i+2, "*\n")
		if end > i+2 && end+1 < len(text) && text[end] == '*' && text[end+1] == '*' {
			sb.WriteString(text[last:i])
			sb.WriteString("<strong>")
			sb.WriteString(text[i+2 : end])
			sb.WriteString("</strong>")
			i = end + 2
			last = i
			continue
		}
		i++
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// convertItalic rewrites *text* spans using the leftmost-shortest match: the
// opening asterisk has no asterisk on either side, text holds no asterisk or
// newline, and the closing asterisk is not followed by another one.
func (s *state) convertItalic(text string) string {
	if !strings.Contains(text, "*") {
		return text
	}

	var sb strings.Builder
	last := 0
	for i := 0; i < len(text); {
		if text[i] != '*' || isAsteriskAt(text, i-1) || isAsteriskAt(text, i+1) {
			i++
			continue
		}

		end := indexStop(text, i+1, "*\n")
		if end < len(text) && text[end] == '*' && end > i+1 && !isAsteriskAt(text, end+1) {
			sb.WriteString(text[last:i])
			sb.WriteString("<em>")
			sb.WriteString(text[i+1 : end])
			sb.WriteString("</em>")
			i = end + 1
			last = i
			continue
		}
		// Nothing between i and end can open a span either.
		if end > i {
			i = end
		} else {
			i++
		}
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// convertImages rewrites ![alt](url) into editor image tags.
func (s *state) convertImages(text string) string {
	return replaceBracketed(text, "![", func(label, url string) string {
		var sb strings.Builder
		sb.WriteString(`<img src="`)
		sb.WriteString(embed.EscapeAttr(url))
		sb.WriteString(`" alt="`)
		sb.WriteString(embed.EscapeAttr(label))
		sb.WriteString(`" class="`)
		sb.WriteString(s.config.ImageClass)
		sb.WriteString(`" style="`)
		sb.WriteString(s.config.ImageStyle)
		sb.WriteString(`" />`)
		return sb.String()
	})
}

// convertLinks rewrites [text](url) into editor anchor tags.
func (s *state) convertLinks(text string) string {
	return replaceBracketed(text, "[", func(label, url string) string {
		var sb strings.Builder
		sb.WriteString(`<a href="`)
		sb.WriteString(embed.EscapeAttr(url))
		sb.WriteString(`"`)
		if s.config.LinkTarget == LinkTargetBlank {
			sb.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		sb.WriteString(` class="`)
		sb.WriteString(s.config.LinkClass)
		sb.WriteString(`">`)
		sb.WriteString(label)
		sb.WriteString(`</a>`)
		return sb.String()
	})
}

// replaceBracketed finds opener + label + "](" + url + ")" sequences and
// replaces each with build(label, url). Labels stop at brackets and newlines,
// urls at parentheses and newlines, so every byte is examined a bounded
// number of times.
func replaceBracketed(text, opener string, build func(label, url string) string) string {
	if !strings.Contains(text, opener) {
		return text
	}

	var sb strings.Builder
	last := 0
	for i := 0; i < len(text); {
		if !strings.HasPrefix(text[i:], opener) {
			i++
			continue
		}

		labelStart := i + len(opener)
		labelEnd := indexStop(text, labelStart, "[]\n")
		if labelEnd >= len(text) || text[labelEnd] != ']' {
			// A "[" may start the next candidate, possibly as part of opener.
			i = max(i+1, labelEnd-len(opener)+1)
			continue
		}
		if labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
			i = labelEnd + 1
			continue
		}

		urlStart := labelEnd + 2
		urlEnd := indexStop(text, urlStart, "()\n")
		if urlEnd >= len(text) || text[urlEnd] != ')' || urlEnd == urlStart {
			i = labelEnd + 1
			continue
		}

		sb.WriteString(text[last:i])
		sb.WriteString(build(text[labelStart:labelEnd], text[urlStart:urlEnd]))
		i = urlEnd + 1
		last = i
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// indexStop returns the index of the first byte at or after from that is in
// stops, or len(text) if there is none.
func indexStop(text string, from int, stops string) int {
	if from >= len(text) {
		return len(text)
	}
	if idx := strings.IndexAny(text[from:], stops); idx >= 0 {
		return from + idx
	}
	return len(text)
}

func isAsteriskAt(text string, i int) bool {
	return i >= 0 && i < len(text) && text[i] == '*'
}
