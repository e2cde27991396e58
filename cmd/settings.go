package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cottand/jgenerics/classmodel"
	"github.com/cottand/jgenerics/generics"
	"github.com/cottand/jgenerics/internal/log"
)

// engineFlags are the flags shared by every command that builds an Engine
type engineFlags struct {
	cacheSize *int
	noCache   *bool
	marker    *string
	logLevel  *int
	models    *[]string
}

func bindEngineFlags(c *cobra.Command) *engineFlags {
	defaults := generics.DefaultSettings()
	return &engineFlags{
		cacheSize: c.Flags().Int("cache-size", defaults.CacheSize, "maximum number of memoized parameterised-type lookups"),
		noCache:   c.Flags().Bool("no-cache", false, "disable the parameterised-type lookup cache"),
		marker:    c.Flags().String("marker", defaults.ImplicitMarker, "interface implicitly implemented by classes still in compilation"),
		logLevel:  c.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level"),
		models:    c.Flags().StringSliceP("model", "m", nil, "YAML class model to load on top of the core library"),
	}
}

func (f *engineFlags) settings() generics.Settings {
	log.SetLevel(slog.Level(*f.logLevel))
	s := generics.DefaultSettings()
	s.CacheSize = *f.cacheSize
	if *f.noCache {
		s.CacheSize = 0
	}
	s.ImplicitMarker = *f.marker
	return s
}

func (f *engineFlags) registry() (*classmodel.Registry, error) {
	r := classmodel.NewCoreRegistry()
	for _, path := range *f.models {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read class model: %w", err)
		}
		if err := r.Load(path, content); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// markers are used to report query outcomes
type markers struct {
	ok, fail string
}

func outputMarkers() markers {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return markers{ok: "\033[32m✓\033[0m", fail: "\033[31m✗\033[0m"}
	}
	return markers{ok: "ok  ", fail: "FAIL"}
}
