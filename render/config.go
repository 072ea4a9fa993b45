package render

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockTag controls which element wraps plain paragraph lines.
type BlockTag string

const (
	// BlockDiv wraps lines in <div>, as the editor produces them.
	BlockDiv BlockTag = "div"
	// BlockParagraph wraps lines in <p>.
	BlockParagraph BlockTag = "p"
)

// LinkTarget controls where rendered links open.
type LinkTarget string

const (
	// LinkTargetBlank opens links in a new tab with rel="noopener noreferrer".
	LinkTargetBlank LinkTarget = "blank"
	// LinkTargetSelf emits no target attribute.
	LinkTargetSelf LinkTarget = "self"
)

const (
	defaultImageClass = "post-image"
	defaultImageStyle = "max-width: 100%; height: auto;"
	defaultLinkClass  = "post-link"
)

var classNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Config holds renderer configuration options.
type Config struct {
	BlockTag   BlockTag   `json:"blockTag,omitempty" yaml:"blockTag,omitempty"`
	ImageClass string     `json:"imageClass,omitempty" yaml:"imageClass,omitempty"`
	ImageStyle string     `json:"imageStyle,omitempty" yaml:"imageStyle,omitempty"`
	LinkClass  string     `json:"linkClass,omitempty" yaml:"linkClass,omitempty"`
	LinkTarget LinkTarget `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.BlockTag == "" {
		c.BlockTag = BlockDiv
	}
	if c.ImageClass == "" {
		c.ImageClass = defaultImageClass
	}
	if c.ImageStyle == "" {
		c.ImageStyle = defaultImageStyle
	}
	if c.LinkClass == "" {
		c.LinkClass = defaultLinkClass
	}
	if c.LinkTarget == "" {
		c.LinkTarget = LinkTargetBlank
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.BlockTag != BlockDiv && c.BlockTag != BlockParagraph {
		return fmt.Errorf("invalid blockTag %q", c.BlockTag)
	}

	if !classNamePattern.MatchString(c.ImageClass) {
		return fmt.Errorf("invalid imageClass %q", c.ImageClass)
	}

	if !classNamePattern.MatchString(c.LinkClass) {
		return fmt.Errorf("invalid linkClass %q", c.LinkClass)
	}

	if strings.ContainsAny(c.ImageStyle, "\"<>") {
		return fmt.Errorf("imageStyle must not contain quotes or angle brackets, got %q", c.ImageStyle)
	}

	if c.LinkTarget != LinkTargetBlank && c.LinkTarget != LinkTargetSelf {
		return fmt.Errorf("invalid linkTarget %q", c.LinkTarget)
	}

	return nil
}
