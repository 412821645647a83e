package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/sysfont"
)

// DefaultMaxSize bounds labels that set no max_width or max_height.
const DefaultMaxSize = 1024

// Manifest describes a batch of labels to render.
//
//	shaper: gotext
//	font_dirs: [./fonts]
//	defaults:
//	  font: serif
//	  size: 24
//	  max_width: 512
//	labels:
//	  - name: title
//	    text: "[FF0000]Game [FFFFFF]Over"
//	    bold: true
type Manifest struct {
	Shaper   string        `yaml:"shaper,omitempty"`
	FontDirs []string      `yaml:"font_dirs,omitempty"`
	FlipY    bool          `yaml:"flip_y,omitempty"`
	Defaults LabelConfig   `yaml:"defaults"`
	Labels   []LabelConfig `yaml:"labels"`
}

// LabelConfig is one label of a manifest. Zero fields take the manifest
// defaults.
type LabelConfig struct {
	Name      string  `yaml:"name,omitempty"`
	Text      string  `yaml:"text"`
	Font      string  `yaml:"font,omitempty"`
	Size      float64 `yaml:"size,omitempty"`
	Bold      *bool   `yaml:"bold,omitempty"`
	Italic    *bool   `yaml:"italic,omitempty"`
	Align     string  `yaml:"align,omitempty"`
	MaxWidth  int     `yaml:"max_width,omitempty"`
	MaxHeight int     `yaml:"max_height,omitempty"`
	Out       string  `yaml:"out,omitempty"`
}

// LoadManifest reads and parses a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("manifest has no labels")
	}
	return &m, nil
}

// Resolved returns the labels with defaults applied and output names
// filled in.
func (m *Manifest) Resolved() []LabelConfig {
	d := m.Defaults
	out := make([]LabelConfig, len(m.Labels))
	for i, l := range m.Labels {
		if l.Font == "" {
			l.Font = d.Font
		}
		if l.Size <= 0 {
			l.Size = d.Size
		}
		if l.Bold == nil {
			l.Bold = d.Bold
		}
		if l.Italic == nil {
			l.Italic = d.Italic
		}
		if l.Align == "" {
			l.Align = d.Align
		}
		if l.MaxWidth <= 0 {
			l.MaxWidth = d.MaxWidth
		}
		if l.MaxWidth <= 0 {
			l.MaxWidth = DefaultMaxSize
		}
		if l.MaxHeight <= 0 {
			l.MaxHeight = d.MaxHeight
		}
		if l.MaxHeight <= 0 {
			l.MaxHeight = DefaultMaxSize
		}
		if l.Name == "" {
			l.Name = fmt.Sprintf("label%d", i+1)
		}
		if l.Out == "" {
			l.Out = l.Name + ".png"
		}
		out[i] = l
	}
	return out
}

// Style converts the label font settings to a sysfont.Style.
func (l LabelConfig) Style() (sysfont.Style, error) {
	align, err := parseAlignment(l.Align)
	if err != nil {
		return sysfont.Style{}, fmt.Errorf("label %q: %w", l.Name, err)
	}
	return sysfont.Style{
		FontName:  l.Font,
		FontSize:  l.Size,
		Bold:      l.Bold != nil && *l.Bold,
		Italic:    l.Italic != nil && *l.Italic,
		Alignment: align,
	}, nil
}

// parseAlignment accepts start/left, center, end/right or an engine code.
func parseAlignment(s string) (sysfont.Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "left":
		return sysfont.AlignStart, nil
	case "center", "centre":
		return sysfont.AlignCenter, nil
	case "end", "right":
		return sysfont.AlignEnd, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return sysfont.AlignmentFromInt(n), nil
	}
	return sysfont.AlignStart, fmt.Errorf("unknown alignment %q", s)
}
