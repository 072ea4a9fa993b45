// Package extract recovers the persisted post source from editor display
// HTML, including HTML the user has edited by hand.
package extract

import (
	"fmt"
	"strings"

	"github.com/rgonek/post-markup/embed"
	"github.com/rgonek/post-markup/render"
	xhtml "golang.org/x/net/html"
)

// Extractor converts editor display HTML back to post source.
type Extractor struct {
	config Config
}

type state struct {
	config     Config
	out        strings.Builder
	item       *strings.Builder
	listDepth  int
	frames     []inlineFrame
	warnings   []render.Warning
	warnedTags map[string]bool
}

var defaultExtractor = mustNew(Config{})

// New creates a new Extractor with the given config.
func New(config Config) (*Extractor, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		config: cfg,
	}, nil
}

func mustNew(config Config) *Extractor {
	e, err := New(config)
	if err != nil {
		panic(err)
	}
	return e
}

// ToSource extracts source from display with the default configuration.
func ToSource(display string) string {
	return defaultExtractor.Extract(display).Source
}

// Extract takes editor display HTML and returns the source document. It
// accepts any string; problems are reported as warnings, never as errors.
func (e *Extractor) Extract(display string) Result {
	s := &state{
		config:     e.config,
		warnedTags: make(map[string]bool),
	}

	if embed.HasPlaceholderText(display) {
		s.addWarning(
			render.WarningPlaceholderCollision,
			"text",
			"display already contains placeholder-shaped text; it is kept as literal text",
		)
	}

	guarded, fragments := embed.Protect(display)
	s.resolve(embed.PadPlaceholders(guarded, fragments))
	source := normalize(s.out.String())

	return Result{
		Source:   embed.Restore(source, fragments),
		Embeds:   embed.Describes(fragments),
		Warnings: s.warnings,
	}
}

// resolve walks the display tokens and writes source syntax. Text is copied
// undecoded; entities are handled once by normalize.
func (s *state) resolve(display string) {
	z := xhtml.NewTokenizer(strings.NewReader(display))
	consumed := 0

	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			break
		}

		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case xhtml.TextToken:
			s.text(raw)
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			s.startTag(string(name), raw)
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			s.endTag(string(name), raw)
		case xhtml.CommentToken:
			s.unknownTag("!--", raw)
		case xhtml.DoctypeToken:
			s.unknownTag("!doctype", raw)
		}
	}

	// The tokenizer drops a tag left open at end of input; keep it as text.
	if consumed < len(display) {
		s.write(display[consumed:])
	}

	s.closeFrames()
	s.flushItem()
}

func (s *state) write(str string) {
	if s.item != nil {
		s.item.WriteString(str)
		return
	}
	s.out.WriteString(str)
}

func (s *state) text(raw string) {
	if s.listDepth > 0 && s.item == nil && strings.TrimSpace(raw) == "" {
		return
	}
	s.write(raw)
}

func (s *state) addWarning(warnType render.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, render.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *state) unknownTag(name, raw string) {
	if s.config.UnknownTags == UnknownKeep {
		s.write(raw)
		return
	}

	if s.warnedTags[name] {
		return
	}
	s.warnedTags[name] = true
	s.addWarning(
		render.WarningUnknownNode,
		name,
		fmt.Sprintf("unsupported tag <%s> stripped, inner text kept", name),
	)
}
