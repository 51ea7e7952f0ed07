// Package config loads squaregen job files. Files may be JSON or YAML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/mikiera/Life/pkg/squares"
)

// Config is the normalised form of a job file.
type Config struct {
	Theme     string
	Variant   string
	Templates string
	Output    string
	Jobs      []squares.Job
	Themes    []*theme.Manifest
}

type documentFile struct {
	Theme     string      `json:"theme" yaml:"theme"`
	Variant   string      `json:"variant" yaml:"variant"`
	Templates string      `json:"templates" yaml:"templates"`
	Output    string      `json:"output" yaml:"output"`
	Jobs      []jobFile   `json:"jobs" yaml:"jobs"`
	Themes    []themeFile `json:"themes" yaml:"themes"`
}

type jobFile struct {
	Kind  string `json:"kind" yaml:"kind"`
	Begin *int   `json:"begin" yaml:"begin"`
	End   *int   `json:"end" yaml:"end"`
}

type themeFile struct {
	Name      string                 `json:"name" yaml:"name"`
	Version   string                 `json:"version" yaml:"version"`
	Tokens    map[string]string      `json:"tokens" yaml:"tokens"`
	Templates map[string]string      `json:"templates" yaml:"templates"`
	Variants  map[string]variantFile `json:"variants" yaml:"variants"`
}

type variantFile struct {
	Tokens    map[string]string `json:"tokens" yaml:"tokens"`
	Templates map[string]string `json:"templates" yaml:"templates"`
}

// LoadFile reads and parses path. A relative templates directory or output
// path is resolved against the directory holding the file.
func LoadFile(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}

	base := filepath.Dir(path)
	cfg.Templates = resolve(base, cfg.Templates)
	cfg.Output = resolve(base, cfg.Output)
	return cfg, nil
}

// Parse decodes data as JSON, then YAML. source is only used in messages.
func Parse(data []byte, source string) (Config, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return Config{}, err
	}
	return normalise(doc, source)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func normalise(doc documentFile, source string) (Config, error) {
	cfg := Config{
		Theme:     strings.TrimSpace(doc.Theme),
		Variant:   strings.TrimSpace(doc.Variant),
		Templates: strings.TrimSpace(doc.Templates),
		Output:    strings.TrimSpace(doc.Output),
	}

	for i, raw := range doc.Jobs {
		kind, err := squares.ParseKind(raw.Kind)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s job %d: %w", source, i, err)
		}
		if raw.Begin == nil || raw.End == nil {
			return Config{}, fmt.Errorf("config: %s job %d: begin and end are required", source, i)
		}
		cfg.Jobs = append(cfg.Jobs, squares.Job{
			Kind:  kind,
			Range: squares.Range{Begin: *raw.Begin, End: *raw.End},
		})
	}

	seen := make(map[string]struct{}, len(doc.Themes))
	for i, raw := range doc.Themes {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return Config{}, fmt.Errorf("config: %s theme %d: name is required", source, i)
		}
		if _, dup := seen[name]; dup {
			return Config{}, fmt.Errorf("config: %s: duplicate theme %q", source, name)
		}
		seen[name] = struct{}{}
		cfg.Themes = append(cfg.Themes, raw.manifest(name))
	}

	return cfg, nil
}

func (f themeFile) manifest(name string) *theme.Manifest {
	manifest := &theme.Manifest{
		Name:      name,
		Version:   strings.TrimSpace(f.Version),
		Tokens:    f.Tokens,
		Templates: f.Templates,
	}
	if len(f.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(f.Variants))
		for key, variant := range f.Variants {
			manifest.Variants[strings.TrimSpace(key)] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
			}
		}
	}
	return manifest
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
