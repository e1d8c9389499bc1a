package main

import (
	"fmt"
	"os"
	"time"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
)

// maxWorkers caps --workers; each PDF worker owns a Chrome instance.
const maxWorkers = 32

// loadConfig resolves the config file from the flag, then PLAYBOOK_CONFIG,
// and overlays the environment. It returns the config name used, if any.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, string, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, name, err
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, name, nil
}

// validateWorkers rejects negative or excessive worker counts.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveTimeout returns the PDF timeout.
// Priority: flag > PLAYBOOK_TIMEOUT > library default (0).
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	return envValue, nil
}

// buildPageSettings overlays page flags on the config page section.
// Empty values fall back to the defaults.
func buildPageSettings(f pageFlags, cfg *config.Config) (*playbook.PageSettings, error) {
	page := playbook.PageSettingsFromConfig(cfg.Page)
	defaults := playbook.DefaultPageSettings()

	if f.size != "" {
		page.Size = f.size
	}
	if f.orientation != "" {
		page.Orientation = f.orientation
	}
	if f.margin != 0 {
		page.Margin = f.margin
	}

	if page.Size == "" {
		page.Size = defaults.Size
	}
	if page.Orientation == "" {
		page.Orientation = defaults.Orientation
	}
	if page.Margin == 0 {
		page.Margin = defaults.Margin
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// converterOptions builds library options from config and flags.
func converterOptions(cfg *config.Config, a assetFlags, timeout time.Duration) []playbook.Option {
	opts := []playbook.Option{
		playbook.WithRules(cfg.Rules),
		playbook.WithStyle(a.style),
		playbook.WithTemplateSet(a.template),
	}

	assetPath := a.assetPath
	if assetPath == "" {
		assetPath = cfg.Assets.BasePath
	}
	if assetPath != "" {
		opts = append(opts, playbook.WithAssetPath(assetPath))
	}
	if timeout > 0 {
		opts = append(opts, playbook.WithTimeout(timeout))
	}
	return opts
}

// readCSS loads an extra stylesheet. An empty path yields "".
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- CSS path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}
