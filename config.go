package papercraft

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/render"
)

const mmPt = 72.0 / 25.4

// Config holds the resolved settings for document generation. The zero
// value is not valid; start from DefaultConfig.
type Config struct {
	Title    string `yaml:"title"`
	Branding string `yaml:"branding"`

	PageSize    string `yaml:"pageSize"`    // a4, letter, legal
	Orientation string `yaml:"orientation"` // portrait, landscape

	// Margins in millimetres. Zero means the default for that side.
	Margins MarginConfig `yaml:"margins"`

	// CodeHighlight enables lexer-backed code block emphasis.
	CodeHighlight bool `yaml:"codeHighlight"`

	// Compress enables flate compression of content streams.
	Compress bool `yaml:"compress"`
}

// MarginConfig holds per-side margins in millimetres.
type MarginConfig struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// DefaultConfig returns the stock A4 portrait configuration.
func DefaultConfig() *Config {
	return &Config{
		Title:       "Professional Document",
		Branding:    "Generated by Papercraft",
		PageSize:    "a4",
		Orientation: "portrait",
		Margins:     MarginConfig{Top: 30, Bottom: 30, Left: 25, Right: 25},
		Compress:    true,
	}
}

// LoadConfig reads and validates a YAML config file. Missing fields keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks page geometry settings.
func (c *Config) Validate() error {
	if _, err := c.paperSize(); err != nil {
		return err
	}
	switch strings.ToLower(c.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, c.Orientation)
	}
	for _, m := range []float64{c.Margins.Top, c.Margins.Bottom, c.Margins.Left, c.Margins.Right} {
		if m < 0 {
			return fmt.Errorf("%w: negative value", ErrInvalidMargin)
		}
	}
	return nil
}

func (c *Config) paperSize() (builder.PaperSize, error) {
	switch strings.ToLower(c.PageSize) {
	case "", "a4":
		return builder.A4, nil
	case "letter":
		return builder.Letter, nil
	case "legal":
		return builder.Legal, nil
	default:
		return builder.PaperSize{}, fmt.Errorf("%w: %q", ErrInvalidPageSize, c.PageSize)
	}
}

// layout resolves the page geometry for the renderer. Validate must have
// passed.
func (c *Config) layout() render.PageLayout {
	size, _ := c.paperSize()
	if strings.EqualFold(c.Orientation, "landscape") {
		size = size.Landscape()
	}
	l := render.DefaultLayout()
	l.Width = size.Width
	l.Height = size.Height
	if c.Margins.Top > 0 {
		l.MarginTop = c.Margins.Top * mmPt
	}
	if c.Margins.Bottom > 0 {
		l.MarginBottom = c.Margins.Bottom * mmPt
	}
	if c.Margins.Left > 0 {
		l.MarginLeft = c.Margins.Left * mmPt
	}
	if c.Margins.Right > 0 {
		l.MarginRight = c.Margins.Right * mmPt
	}
	return l
}
