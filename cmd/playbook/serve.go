package main

import (
	"context"
	"fmt"
	"net"
	"os"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/server"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/source"
)

// runServe starts the preview server and blocks until ctx is done.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: serve takes at most one source file", ErrUsage)
	}
	if len(rest) == 1 && flags.source == "" {
		flags.source = rest[0]
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.logFormat != "json" && flags.logFormat != "text" {
		return fmt.Errorf("%w: unknown log format %q", ErrUsage, flags.logFormat)
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())
	cfg, _, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	log := newLogger(env.Stderr, flags.logFormat == "json", flags.common.verbose)

	addr := firstNonEmpty(flags.addr, cfg.Server.Addr)
	src := firstNonEmpty(flags.source, cfg.Server.Source)
	if src == "" {
		return ErrNoInput
	}
	// Fail at startup rather than on the first request.
	if _, err := source.Read(src); err != nil {
		return err
	}

	assetsDir := firstNonEmpty(flags.assetsDir, cfg.Server.AssetsDir)
	if assetsDir != "" && !isDir(assetsDir) {
		log.Warn("assets directory not found, /assets/ disabled", "dir", assetsDir)
		assetsDir = ""
	}

	page, err := buildPageSettings(flags.page, cfg)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}
	opts := converterOptions(cfg, flags.assets, timeout)

	// HTML preview never starts a browser.
	preview, err := playbook.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer preview.Close()

	var exporter server.Exporter
	if !flags.noPDF {
		workers := flags.workers
		if workers == 0 {
			workers = envCfg.Workers
		}
		pool := playbook.NewConverterPool(playbook.ResolvePoolSize(workers), opts...)
		defer func() {
			if err := pool.Close(); err != nil {
				log.Warn("closing converters", "error", err)
			}
		}()
		exporter = pool
		log.Debug("PDF export enabled", "workers", pool.Size())
	}

	srv, err := server.New(preview, exporter, log, server.Options{
		Source:    src,
		AssetsDir: assetsDir,
		Title:     flags.title,
		Page:      page,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx, addr, srv, log, func(a net.Addr) {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Serving %s at http://%s\n", src, a)
		}
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
