package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/fileutil"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidRule     = errors.New("invalid rule")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// configDirName is the directory searched under the user config dir.
const configDirName = "orchardprogram"

// Field length limits.
const (
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxPathLength        = 4096 // filesystem paths
	MaxAnchorLength      = 200  // cover anchor phrases
)

// Image placement modes for subsection titles.
const (
	PlacementLead   = "lead"   // product image first, subsection wrapped in a product section
	PlacementAppend = "append" // image appended after the subsection content, once per render
	PlacementWrap   = "wrap"   // content wrapped in WrapClass, image appended every time
)

// Config holds all configuration for parsing, rendering and serving.
type Config struct {
	Rules  Rules        `yaml:"rules"`
	Page   PageConfig   `yaml:"page"`
	Server ServerConfig `yaml:"server"`
	Assets AssetsConfig `yaml:"assets"`
	Output OutputConfig `yaml:"output"`
}

// Rules holds the static tables that drive domain-specific behavior.
type Rules struct {
	Exclusions []string     `yaml:"exclusions"` // Case-insensitive title patterns of dropped sections
	Icons      []Icon       `yaml:"icons"`
	BoldTerms  []string     `yaml:"boldTerms"` // Product-name variants rendered in <strong>
	Images     []ImageRule  `yaml:"images"`
	Products   []ProductCue `yaml:"products"`
	Cover      CoverAnchors `yaml:"cover"`
}

// Icon maps a pictographic symbol to icon markup.
type Icon struct {
	Symbol string `yaml:"symbol"`
	Class  string `yaml:"class"` // Font Awesome classes, e.g. "fas fa-leaf"
	Color  string `yaml:"color"`
}

// ImageRule maps keyword fragments to an image.
type ImageRule struct {
	Key       string   `yaml:"key"`
	Keywords  []string `yaml:"keywords"` // Case-insensitive substrings matched against subsection titles
	Src       string   `yaml:"src"`
	Alt       string   `yaml:"alt"`
	Caption   string   `yaml:"caption"`
	Class     string   `yaml:"class"`
	Placement string   `yaml:"placement"` // lead, append, wrap
	WrapClass string   `yaml:"wrapClass"` // Used with placement "wrap"
}

// ProductCue recognizes the paragraph that introduces a product.
// A paragraph matches when it contains any of Contains, or when Pattern
// matches and the text contains any of Requires.
type ProductCue struct {
	Image    string   `yaml:"image"` // ImageRule key
	Contains []string `yaml:"contains"`
	Pattern  string   `yaml:"pattern"`
	Requires []string `yaml:"requires"`
}

// CoverAnchors are the phrases that locate cover page blocks.
type CoverAnchors struct {
	Organization string `yaml:"organization"`
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Description  string `yaml:"description"`
	Version      string `yaml:"version"`
	Summary      string `yaml:"summary"`
	Logo         string `yaml:"logo"`
	LogoAlt      string `yaml:"logoAlt"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// ServerConfig defines preview server options.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	Source    string `yaml:"source"`    // Playbook text file served by the preview
	AssetsDir string `yaml:"assetsDir"` // Directory served under /assets/
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same directory as the source
}

// DefaultConfig returns the configuration for the built-in playbook conventions.
func DefaultConfig() *Config {
	return &Config{
		Rules: DefaultRules(),
		Page: PageConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			Source:    "playbook.txt",
			AssetsDir: "assets",
		},
	}
}

// DefaultRules returns the rule tables of the orchard program playbook.
func DefaultRules() Rules {
	product := func(key, src, label string, keywords ...string) ImageRule {
		return ImageRule{
			Key:       key,
			Keywords:  keywords,
			Src:       src,
			Alt:       label,
			Caption:   label,
			Class:     "product-image",
			Placement: PlacementLead,
		}
	}

	return Rules{
		Exclusions: []string{`marketing/sales pipeline overview`},
		Icons: []Icon{
			{Symbol: "🍎", Class: "fas fa-apple-alt", Color: "#e74c3c"},
			{Symbol: "🍑", Class: "fas fa-seedling", Color: "#f39c12"},
			{Symbol: "🌰", Class: "fas fa-seedling", Color: "#8b4513"},
			{Symbol: "🥑", Class: "fas fa-leaf", Color: "#27ae60"},
			{Symbol: "🍊", Class: "fas fa-lemon", Color: "#f39c12"},
			{Symbol: "🍇", Class: "fas fa-wine-bottle", Color: "#8e44ad"},
			{Symbol: "🥜", Class: "fas fa-circle", Color: "#d4a574"},
		},
		BoldTerms: []string{
			"Pomona",
			"Seriokai's Secret",
			"Seriokai",
			"Serikai",
			"Bucchas",
			"Bacchus",
		},
		Images: []ImageRule{
			product("pomona", "assets/Pomona10lbs.jpg", "Pomona Blend - 9 lb bag", "pomona"),
			product("seriokai", "assets/Seriokai10lbs.jpg", "Seriokai's Secret Blend - 9 lb bag", "seriokai", "serikai"),
			product("bucchas", "assets/Bacchus1CF.jpg", "Bacchus Blend - 1 CF bag", "bucchas", "bacchus"),
			{
				Key:       "crop-focus",
				Keywords:  []string{"crop focus"},
				Src:       "assets/Crop focus.png",
				Alt:       "Crop Focus",
				Caption:   "Crop Focus",
				Class:     "crop-focus-image",
				Placement: PlacementAppend,
			},
			{
				Key:       "common-crop-challenges",
				Keywords:  []string{"common crop challenges"},
				Src:       "assets/orchard soil compaction.png",
				Alt:       "Orchard soil compaction",
				Caption:   "Orchard soil compaction",
				Class:     "crop-challenges-image",
				Placement: PlacementWrap,
				WrapClass: "crop-challenges-wrap",
			},
			{
				Key:       "geographic-scope",
				Keywords:  []string{"geographic scope"},
				Src:       "assets/300miradiouspicture.png",
				Alt:       "300-mile target radius from SSW operations",
				Caption:   "300-mile priority radius from SSW operations",
				Class:     "geo-scope",
				Placement: PlacementWrap,
				WrapClass: "geo-scope-wrap",
			},
		},
		Products: []ProductCue{
			{Image: "pomona", Contains: []string{"pomona blend"}, Pattern: `^\d+\.\s*pomona`, Requires: []string{"orchards"}},
			{Image: "seriokai", Contains: []string{"serikai"}, Pattern: `^\d+\.\s*serikai`, Requires: []string{"avocados", "citrus"}},
			{Image: "bucchas", Contains: []string{"bucchas blend", "bacchus"}, Pattern: `^\d+\.\s*(bucchas|bacchus)`, Requires: []string{"vineyards"}},
		},
		Cover: CoverAnchors{
			Organization: "SOIL SEED & WATER",
			Title:        "A specialty",
			Subtitle:     "Business-to-Business",
			Description:  "Complete Guide",
			Version:      "Version",
			Summary:      "This document provides",
			Logo:         "assets/logo/ssw-logo.png",
			LogoAlt:      "Soil Seed & Water Logo",
		},
	}
}

// Validate checks field lengths, page settings and rule consistency.
// Called by LoadConfig, but available for callers who build a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.source", c.Server.Source, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	return c.Rules.Validate()
}

// Validate checks that patterns compile and references resolve.
func (r *Rules) Validate() error {
	for i, pattern := range r.Exclusions {
		if _, err := regexp.Compile("(?i)" + pattern); err != nil {
			return fmt.Errorf("%w: exclusions[%d]: %v", ErrInvalidRule, i, err)
		}
	}

	for i, icon := range r.Icons {
		if icon.Symbol == "" || icon.Class == "" {
			return fmt.Errorf("%w: icons[%d]: symbol and class are required", ErrInvalidRule, i)
		}
	}

	keys := make(map[string]bool, len(r.Images))
	for i, img := range r.Images {
		if img.Key == "" || img.Src == "" {
			return fmt.Errorf("%w: images[%d]: key and src are required", ErrInvalidRule, i)
		}
		if keys[img.Key] {
			return fmt.Errorf("%w: images[%d]: duplicate key %q", ErrInvalidRule, i, img.Key)
		}
		keys[img.Key] = true

		switch img.Placement {
		case PlacementLead, PlacementAppend:
		case PlacementWrap:
			if img.WrapClass == "" {
				return fmt.Errorf("%w: images[%d]: wrapClass required for placement %q", ErrInvalidRule, i, img.Placement)
			}
		default:
			return fmt.Errorf("%w: images[%d]: unknown placement %q", ErrInvalidRule, i, img.Placement)
		}
	}

	for i, cue := range r.Products {
		if !keys[cue.Image] {
			return fmt.Errorf("%w: products[%d]: unknown image %q", ErrInvalidRule, i, cue.Image)
		}
		if cue.Pattern != "" {
			if _, err := regexp.Compile("(?i)" + cue.Pattern); err != nil {
				return fmt.Errorf("%w: products[%d]: %v", ErrInvalidRule, i, err)
			}
		}
	}

	anchors := map[string]string{
		"cover.organization": r.Cover.Organization,
		"cover.title":        r.Cover.Title,
		"cover.subtitle":     r.Cover.Subtitle,
		"cover.description":  r.Cover.Description,
		"cover.version":      r.Cover.Version,
		"cover.summary":      r.Cover.Summary,
	}
	for name, value := range anchors {
		if err := validateFieldLength(name, value, MaxAnchorLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their default values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name: current directory
// first, then the user config directory, .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
