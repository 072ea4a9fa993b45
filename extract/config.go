package extract

import "fmt"

// UnknownPolicy controls what happens to tags outside the editor dialect.
type UnknownPolicy string

const (
	// UnknownStrip drops the tag and keeps its inner text.
	UnknownStrip UnknownPolicy = "strip"
	// UnknownKeep copies the tag into the source verbatim.
	UnknownKeep UnknownPolicy = "keep"
)

// Config configures display to source extraction.
type Config struct {
	UnknownTags UnknownPolicy `json:"unknownTags,omitempty" yaml:"unknownTags,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.UnknownTags == "" {
		c.UnknownTags = UnknownStrip
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.UnknownTags != UnknownStrip && c.UnknownTags != UnknownKeep {
		return fmt.Errorf("invalid unknownTags %q", c.UnknownTags)
	}
	return nil
}
