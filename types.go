package playbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/assets"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// PageSettingsFromConfig converts the page section of a config file.
func PageSettingsFromConfig(c config.PageConfig) *PageSettings {
	return &PageSettings{
		Size:        c.Size,
		Orientation: c.Orientation,
		Margin:      c.Margin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Text      string        // Playbook source text (required)
	Title     string        // Document <title> (optional, default "Playbook")
	SourceDir string        // Resolves relative image paths for PDF export (optional)
	CSS       string        // Extra CSS appended after the style (optional)
	Page      *PageSettings // Page settings (optional, nil = defaults)
	HTMLOnly  bool          // Skip PDF generation
}

// Result holds the outputs of a conversion.
type Result struct {
	Document *Document // Normalized document tree
	HTML     []byte    // Standalone HTML document
	PDF      []byte    // Nil when Input.HTMLOnly is set
}

// defaultTitle is the document title used when Input.Title is empty.
const defaultTitle = "Playbook"

// Option configures a Renderer or a Converter.
type Option func(*settings)

// settings holds construction-time configuration shared by Renderer and
// Converter. Options a Renderer has no use for are ignored.
type settings struct {
	timeout     time.Duration
	rules       config.Rules
	assetPath   string
	style       string
	templateSet string
	pdf         pdfConverter // Injected by tests
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

func defaultSettings() settings {
	return settings{
		timeout:     defaultTimeout,
		rules:       config.DefaultRules(),
		style:       assets.DefaultStyleName,
		templateSet: assets.DefaultTemplateSetName,
	}
}

// WithTimeout sets the PDF conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("playbook: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithRules replaces the built-in rule tables (exclusions, icons, images,
// products, bold terms and cover anchors).
func WithRules(rules Rules) Option {
	return func(s *settings) {
		s.rules = rules
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(s *settings) {
		s.assetPath = path
	}
}

// WithStyle selects the CSS style by name.
func WithStyle(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.style = name
		}
	}
}

// WithTemplateSet selects the cover and document templates by set name.
func WithTemplateSet(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.templateSet = name
		}
	}
}
