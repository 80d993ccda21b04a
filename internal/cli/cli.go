// Package cli implements the fareplan command-line interface.
//
// This package provides commands for searching multi-city itineraries
// against a fare file, browsing and visualizing results, serving them over
// a small HTTP API, and managing the local result cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - search: Find the cheapest itineraries for a constraint configuration
//   - template: Write a starter CSV fare file
//   - browse: Interactively step through ranked itineraries
//   - visualize: Render an itinerary's route as DOT or SVG
//   - serve: Expose search results over HTTP
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/fareplan/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fareplan/pkg/buildinfo"
	"github.com/matzehuels/fareplan/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fareplan"
)

// =============================================================================
// Entry Point
// =============================================================================

// Execute runs the fareplan CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Fareplan finds the cheapest multi-city round trip",
		Long:         `Fareplan searches every feasible ordering, departure date, and stay-length combination for a configured set of cities and reports the cheapest round trips, grouped by departure window and optional-city inclusion.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSearchCmd())
	root.AddCommand(newTemplateCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newVisualizeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// =============================================================================
// Cache Factory
// =============================================================================

// cacheFlags holds the cache-selection flags shared by search and serve.
type cacheFlags struct {
	noCache   bool
	backend   string // "file" or "redis"
	redisAddr string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&f.backend, "cache-backend", "file", "cache backend: file, redis")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "redis address for --cache-backend=redis")
}

// newresultCache selects the cache backend. Failure to open the file cache
// degrades to the null cache rather than failing the command.
func newResultCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: f.redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/fareplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
