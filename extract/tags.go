package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rgonek/post-markup/render"
)

var (
	srcAttrPattern  = attrPattern("src")
	altAttrPattern  = attrPattern("alt")
	hrefAttrPattern = attrPattern("href")
)

func attrPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)\s` + name + `\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
}

type frameKind int

const (
	frameStrong frameKind = iota
	frameEm
	frameLink
	frameLiteralLink
)

type inlineFrame struct {
	kind frameKind
	href string
}

func (s *state) startTag(name, raw string) {
	switch name {
	case "ul", "ol":
		s.flushItem()
		s.listDepth++
		if s.listDepth == 1 {
			s.out.WriteString("\n")
		}
	case "li":
		s.flushItem()
		s.item = &strings.Builder{}
	case "div", "p", "h1", "h2", "h3", "h4", "h5", "h6":
	case "strong", "b":
		s.frames = append(s.frames, inlineFrame{kind: frameStrong})
		s.write("**")
	case "em", "i":
		s.frames = append(s.frames, inlineFrame{kind: frameEm})
		s.write("*")
	case "img":
		s.image(raw)
	case "a":
		s.anchor(raw)
	case "br":
		s.write("\n")
	default:
		s.unknownTag(name, raw)
	}
}

func (s *state) endTag(name, raw string) {
	switch name {
	case "ul", "ol":
		if s.listDepth == 0 {
			s.unknownTag(name, raw)
			return
		}
		s.flushItem()
		s.listDepth--
		if s.listDepth == 0 {
			s.out.WriteString("\n")
		}
	case "li":
		s.flushItem()
	case "div", "p":
		s.write("\n")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		s.write("\n\n")
	case "strong", "b":
		if _, ok := s.popFrame(frameStrong); ok {
			s.write("**")
		}
	case "em", "i":
		if _, ok := s.popFrame(frameEm); ok {
			s.write("*")
		}
	case "a":
		frame, ok := s.popFrame(frameLink, frameLiteralLink)
		if !ok {
			return
		}
		s.write(closeFrame(frame, raw))
	case "br":
		s.write("\n")
	case "img":
	default:
		s.unknownTag(name, raw)
	}
}

// image writes ![alt](src), or the raw tag when alt or src is missing.
func (s *state) image(raw string) {
	src, hasSrc := attrValue(raw, srcAttrPattern)
	alt, hasAlt := attrValue(raw, altAttrPattern)
	if !hasSrc || !hasAlt {
		s.addWarning(
			render.WarningMissingAttribute,
			"img",
			fmt.Sprintf("image without alt or src kept as literal text: %s", raw),
		)
		s.write(raw)
		return
	}
	s.write("![" + alt + "](" + src + ")")
}

// anchor opens a link span, or keeps the raw tag when href is missing.
func (s *state) anchor(raw string) {
	href, ok := attrValue(raw, hrefAttrPattern)
	if !ok || strings.TrimSpace(href) == "" {
		s.addWarning(
			render.WarningMissingAttribute,
			"a",
			fmt.Sprintf("link without href kept as literal text: %s", raw),
		)
		s.frames = append(s.frames, inlineFrame{kind: frameLiteralLink})
		s.write(raw)
		return
	}
	s.frames = append(s.frames, inlineFrame{kind: frameLink, href: strings.TrimSpace(href)})
	s.write("[")
}

// flushItem ends the open list item, if any, as a single "- item" line.
// Empty items are dropped.
func (s *state) flushItem() {
	if s.item == nil {
		return
	}
	text := strings.TrimSpace(strings.ReplaceAll(s.item.String(), "\n", " "))
	s.item = nil
	if text == "" {
		return
	}
	s.out.WriteString("- " + text + "\n")
}

// popFrame removes the innermost open frame of one of the given kinds.
func (s *state) popFrame(kinds ...frameKind) (inlineFrame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, kind := range kinds {
			if s.frames[i].kind != kind {
				continue
			}
			frame := s.frames[i]
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return frame, true
		}
	}
	return inlineFrame{}, false
}

// closeFrames closes spans still open at end of input, innermost first. An
// open list item receives the closers before it is flushed.
func (s *state) closeFrames() {
	for i := len(s.frames) - 1; i >= 0; i-- {
		s.write(closeFrame(s.frames[i], "</a>"))
	}
	s.frames = nil
}

func closeFrame(frame inlineFrame, rawClose string) string {
	switch frame.kind {
	case frameStrong:
		return "**"
	case frameEm:
		return "*"
	case frameLink:
		return "](" + frame.href + ")"
	default:
		return rawClose
	}
}

func attrValue(raw string, pattern *regexp.Regexp) (string, bool) {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	for _, group := range match[1:] {
		if group != "" {
			return group, true
		}
	}
	// Matched with an empty quoted value.
	return "", true
}
