// Package render converts the persisted post source dialect into the HTML
// shown by the rich-text editor.
package render

import (
	"strings"

	"github.com/rgonek/post-markup/embed"
)

// Renderer converts post source to editor display HTML.
type Renderer struct {
	config Config
}

type state struct {
	config    Config
	fragments []string
	warnings  []Warning
}

var defaultRenderer = mustNew(Config{})

// New creates a new Renderer with the given config.
func New(config Config) (*Renderer, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		config: cfg,
	}, nil
}

func mustNew(config Config) *Renderer {
	r, err := New(config)
	if err != nil {
		panic(err)
	}
	return r
}

// ToDisplay renders source with the default configuration.
func ToDisplay(source string) string {
	return defaultRenderer.Render(source).HTML
}

// Render takes a source document and returns its display HTML. It accepts
// any string; problems are reported as warnings, never as errors.
func (r *Renderer) Render(source string) Result {
	s := &state{config: r.config}

	if embed.HasPlaceholderText(source) {
		s.addWarning(
			WarningPlaceholderCollision,
			"text",
			"source already contains placeholder-shaped text; it is kept as literal text",
		)
	}

	guarded, fragments := embed.Protect(source)
	s.fragments = fragments
	blocks := s.segmentBlocks(guarded)
	html := strings.ReplaceAll(s.convertInline(blocks), blockBoundary, "")

	return Result{
		HTML:     embed.Restore(html, fragments),
		Embeds:   embed.Describes(fragments),
		Warnings: s.warnings,
	}
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
