package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wbsview/pkg/cache"
	"github.com/matzehuels/wbsview/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.cfg.Cache.Backend {
			case config.BackendNone:
				printInfo("Caching is disabled")
				return nil

			case config.BackendRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), c.redisConfig())
				if err != nil {
					return fmt.Errorf("connect cache: %w", err)
				}
				defer rc.Close()

				count := 0
				for _, kind := range []string{"layout", "artifact"} {
					n, err := rc.Clear(cmd.Context(), c.cfg.Cache.Prefix+kind+":*")
					count += n
					if err != nil {
						return fmt.Errorf("clear cache: %w", err)
					}
				}
				printSuccess("Cleared %d cached entries", count)
				printDetail("Redis: %s", c.cfg.Cache.RedisAddr)
				return nil

			default:
				dir := c.cfg.Cache.Dir
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				if err := fc.Clear(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				printSuccess("Cleared cache")
				printDetail("Directory: %s", dir)
				return nil
			}
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cache entries are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.cfg.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(stdout, "redis://%s/%d\n", c.cfg.Cache.RedisAddr, c.cfg.Cache.RedisDB)
			case config.BackendNone:
				printInfo("Caching is disabled")
			default:
				fmt.Fprintln(stdout, c.cfg.Cache.Dir)
			}
			return nil
		},
	}
}
