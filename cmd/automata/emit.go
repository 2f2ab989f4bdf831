package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/Hardvan/ToC-EL/diagram"
)

// renderID tags every file of one invocation so repeated runs do not
// overwrite each other.
func renderID() string {
	return uuid.New().String()[:8]
}

// writeDiagram serializes the diagram in the configured format into the
// output directory and returns the written path.
func writeDiagram(name string, d *diagram.Diagram) (string, error) {
	dir := viper.GetString("out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	var (
		data []byte
		ext  string
	)
	switch format := viper.GetString("format"); format {
	case "dot":
		data = []byte(d.DOT())
		ext = "dot"
	case "json":
		var err error
		data, err = json.MarshalIndent(d, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding diagram: %w", err)
		}
		ext = "json"
	default:
		return "", fmt.Errorf("unknown output format %q (want dot or json)", format)
	}

	path := filepath.Join(dir, name+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing diagram: %w", err)
	}
	return path, nil
}
