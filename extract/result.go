package extract

import (
	"github.com/rgonek/post-markup/embed"
	"github.com/rgonek/post-markup/render"
)

// Result holds the output of a display to source extraction.
type Result struct {
	Source   string             `json:"source"`
	Embeds   []embed.Descriptor `json:"embeds,omitempty"`
	Warnings []render.Warning   `json:"warnings,omitempty"`
}
