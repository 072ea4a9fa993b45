package render

import "github.com/rgonek/post-markup/embed"

// Result holds the output of a source to display conversion.
type Result struct {
	HTML     string             `json:"html"`
	Embeds   []embed.Descriptor `json:"embeds,omitempty"`
	Warnings []Warning          `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	// WarningUnknownNode reports a tag outside the editor dialect.
	WarningUnknownNode WarningType = "unknown_node"
	// WarningMissingAttribute reports an img or a element missing a required
	// attribute. The tag is kept as literal text.
	WarningMissingAttribute WarningType = "missing_attribute"
	// WarningPlaceholderCollision reports input that already contains
	// placeholder-shaped text.
	WarningPlaceholderCollision WarningType = "placeholder_collision"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
