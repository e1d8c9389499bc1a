package main

import (
	"encoding/json"
	"fmt"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/source"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/yamlutil"
)

// runOutline prints the page outline of a rendered playbook as JSON.
func runOutline(args []string, env *Environment) error {
	flags, rest, err := parseCommonFlags("outline", args, env.Stderr, printOutlineUsage)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: outline takes at most one source file", ErrUsage)
	}

	cfg, _, err := loadConfig(flags.config, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}

	path := cfg.Server.Source
	if len(rest) == 1 {
		path = rest[0]
	}
	if path == "" {
		return ErrNoInput
	}

	text, err := source.Read(path)
	if err != nil {
		return err
	}
	r, err := playbook.NewRenderer(playbook.WithRules(cfg.Rules))
	if err != nil {
		return err
	}
	pages, err := playbook.Outline(r.RenderText(text))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pages)
}

// runRules prints the effective configuration as YAML.
func runRules(args []string, env *Environment) error {
	flags, rest, err := parseCommonFlags("rules", args, env.Stderr, printRulesUsage)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: rules takes no arguments", ErrUsage)
	}

	cfg, _, err := loadConfig(flags.config, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
