package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgonek/post-markup/extract"
	"github.com/rgonek/post-markup/render"
	"gopkg.in/yaml.v3"
)

const (
	presetEditor    = "editor"
	presetParagraph = "paragraph"
	presetKeepHTML  = "keep-html"
)

// Config holds both directions' settings, as read from a YAML file.
type Config struct {
	Render  render.Config  `yaml:"render"`
	Extract extract.Config `yaml:"extract"`
}

func presetConfig(preset string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetEditor:
		return Config{}, nil
	case presetParagraph:
		return Config{
			Render: render.Config{
				BlockTag:   render.BlockParagraph,
				LinkTarget: render.LinkTargetSelf,
			},
		}, nil
	case presetKeepHTML:
		return Config{
			Extract: extract.Config{
				UnknownTags: extract.UnknownKeep,
			},
		}, nil
	default:
		return Config{}, fmt.Errorf("unknown preset %q (allowed: editor, paragraph, keep-html)", preset)
	}
}

// loadConfigFile decodes a YAML config. Unknown keys are an error.
func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig starts from the preset and lets the config file override
// every field it sets.
func resolveConfig(preset, configPath string) (Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return Config{}, err
	}
	if configPath == "" {
		return cfg, nil
	}

	file, err := loadConfigFile(configPath)
	if err != nil {
		return Config{}, err
	}
	return overlay(cfg, file), nil
}

func overlay(base, top Config) Config {
	if top.Render.BlockTag != "" {
		base.Render.BlockTag = top.Render.BlockTag
	}
	if top.Render.ImageClass != "" {
		base.Render.ImageClass = top.Render.ImageClass
	}
	if top.Render.ImageStyle != "" {
		base.Render.ImageStyle = top.Render.ImageStyle
	}
	if top.Render.LinkClass != "" {
		base.Render.LinkClass = top.Render.LinkClass
	}
	if top.Render.LinkTarget != "" {
		base.Render.LinkTarget = top.Render.LinkTarget
	}
	if top.Extract.UnknownTags != "" {
		base.Extract.UnknownTags = top.Extract.UnknownTags
	}
	return base
}
