// Package styles defines the visual styling for failsafe's terminal
// output. Styles use semantic names and adaptive colors that adjust to
// light and dark terminal themes; the definitions live in an embedded
// YAML file so theming stays in one place.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

var colors map[string]lipgloss.AdaptiveColor

//go:embed styles.yaml
var embeddedStyles []byte

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		// Embedded data is compiled in; if it fails, fall back to
		// unstyled output rather than crashing at import time.
		StyleRegistry = make(map[string]lipgloss.Style)
	}
}

// LoadStylesFromData parses style definitions and rebuilds the registry
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	colors = make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	StyleRegistry = make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if def.Foreground != "" {
			if c, ok := colors[def.Foreground]; ok {
				style = style.Foreground(c)
			}
		}
		if def.Background != "" {
			if c, ok := colors[def.Background]; ok {
				style = style.Background(c)
			}
		}
		StyleRegistry[name] = style
	}

	return nil
}

// GetStyle returns the style registered under the given semantic name,
// or a zero style when the name is unknown.
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
