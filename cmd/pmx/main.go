package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rgonek/post-markup/extract"
	"github.com/rgonek/post-markup/render"
)

// convert runs one direction over input and returns the output text and
// any warnings.
func convert(input string, reverse bool, cfg Config) (string, []render.Warning, error) {
	if reverse {
		ext, err := extract.New(cfg.Extract)
		if err != nil {
			return "", nil, fmt.Errorf("invalid extract config: %w", err)
		}
		result := ext.Extract(input)
		return result.Source, result.Warnings, nil
	}

	r, err := render.New(cfg.Render)
	if err != nil {
		return "", nil, fmt.Errorf("invalid render config: %w", err)
	}
	result := r.Render(input)
	return result.HTML, result.Warnings, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func main() {
	reverse := flag.Bool("reverse", false, "Convert display HTML back to post source")
	preset := flag.String("preset", presetEditor, "Preset: editor|paragraph|keep-html")
	configPath := flag.String("config", "", "YAML config file with render and extract sections")
	showWarnings := flag.Bool("warnings", false, "Print conversion warnings to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pmx [options] <input-file|->\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := resolveConfig(*preset, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	data, err := readInput(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	out, warnings, err := convert(string(data), *reverse, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting input: %v\n", err)
		os.Exit(1)
	}

	if *showWarnings {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s (%s): %s\n", w.Type, w.NodeType, w.Message)
		}
	}

	fmt.Print(out)
}
