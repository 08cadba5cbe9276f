package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wbsview/pkg/buildinfo"
	"github.com/matzehuels/wbsview/pkg/cache"
	"github.com/matzehuels/wbsview/pkg/config"
	"github.com/matzehuels/wbsview/pkg/observability"
	"github.com/matzehuels/wbsview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and command hints.
	appName = "wbsview"

	// redisDialTimeout bounds the connection attempt of the redis backend.
	redisDialTimeout = 2 * time.Second
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

	cfg        config.Config
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
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
		Short: "wbsview lays out and explores work breakdown structures",
		Long: `wbsview reads a Work-Breakdown-Structure graph, lays its hierarchy out as a
tree and shows either the whole breakdown or the neighborhood of one item.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/wbsview/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies its log level. --verbose
// wins over the configured level.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.Logger.GetLevel() != log.DebugLevel {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.Logger.SetLevel(level)
		}
	}
	c.Logger.Debug("configuration loaded", "path", c.activeConfigPath(), "cache", cfg.Cache.Backend)
	return nil
}

func (c *CLI) activeConfigPath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.Path()
}

// registerHooks routes pipeline and cache events to the debug log.
func (c *CLI) registerHooks() {
	hooks := newLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
}

// =============================================================================
// Runner Factory
// =============================================================================

// layoutFlags are per-command overrides of the configured layout values.
// Zero keeps the configured value.
type layoutFlags struct {
	xGap     float64
	yGap     float64
	radius   float64
	detailed bool
	refresh  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.xGap, "x-gap", 0, "horizontal distance between depths (default from config)")
	cmd.Flags().Float64Var(&f.yGap, "y-gap", 0, "vertical distance between rows (default from config)")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "neighbor circle radius of the local view (default from config)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// pipelineOptions merges the configuration with command-line overrides.
func (c *CLI) pipelineOptions(f layoutFlags) pipeline.Options {
	opts := pipeline.Options{
		XGap:     c.cfg.Layout.XGap,
		YGap:     c.cfg.Layout.YGap,
		Radius:   c.cfg.Layout.Radius,
		Detailed: c.cfg.Render.Detailed || f.detailed,
		Refresh:  f.refresh,
	}
	if f.xGap > 0 {
		opts.XGap = f.xGap
	}
	if f.yGap > 0 {
		opts.YGap = f.yGap
	}
	if f.radius > 0 {
		opts.Radius = f.radius
	}
	return opts.WithDefaults()
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	if nc, ok := cc.(*cache.NullCache); ok {
		c.Logger.Debug("caching disabled", "reason", nc.Reason())
	}
	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the configured backend. An unreachable Redis disables
// caching instead of failing the command.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache("--no-cache"), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache("backend none"), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.redisConfig())
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "err", err)
			return cache.NewNullCache("redis unavailable"), nil
		}
		return rc, nil
	default:
		return cache.NewFileCache(c.cfg.Cache.Dir)
	}
}

func (c *CLI) redisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:        c.cfg.Cache.RedisAddr,
		Password:    c.cfg.Cache.RedisPassword,
		DB:          c.cfg.Cache.RedisDB,
		DialTimeout: redisDialTimeout,
		OnBreakerChange: func(from, to string) {
			c.Logger.Warn("redis circuit breaker", "from", from, "to", to)
		},
	}
}
