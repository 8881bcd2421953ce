// Package cli implements the lnzlayouts command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/buildinfo"
	"github.com/matzehuels/lnzlayouts/pkg/cache"
	"github.com/matzehuels/lnzlayouts/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lnzlayouts"

	// redisEnv names the environment variable holding the default Redis URL.
	redisEnv = "LNZ_REDIS_URL"

	// cacheTTL is how long rendered artifacts stay cached.
	cacheTTL = 7 * 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// redisURL selects the Redis cache backend when set.
	redisURL string

	// keyer namespaces cache keys by build so a shared Redis never serves
	// artifacts from another version.
	keyer cache.Keyer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":"),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "lnzlayouts computes collection view layouts headlessly",
		Long: `lnzlayouts runs snapping, infinite, carousel and stacked-card collection
layouts against an in-memory scroll view. It prints the resulting element
geometry, simulates gestures and transitions, and renders previews.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installHooks(c.Logger)
			c.Logger.Debug(appName, buildinfo.Fields()...)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.redisURL, "redis", os.Getenv(redisEnv), "Redis URL for the artifact cache (default $"+redisEnv+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.stackCommand())
	root.AddCommand(c.transitionCommand())
	root.AddCommand(c.statechartCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache returns the artifact cache: Redis when a URL is configured,
// otherwise the file cache under cacheDir. Hits and misses are reported
// through the observability hooks.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.redisURL, appName+":")
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return cache.Instrument(rc), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(fc), nil
}

// =============================================================================
// Exit Codes
// =============================================================================

// ExitCode maps a command error to a process exit status: 130 after an
// interrupt, 2 for bad input or configuration, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if stderrors.Is(err, context.Canceled) {
		return 130
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidIndex, errors.ErrCodeInvalidGesture, errors.ErrCodeInvalidLayout,
		errors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lnzlayouts/).
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
