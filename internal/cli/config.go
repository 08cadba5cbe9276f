package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the active configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, c.activeConfigPath())
			return nil
		},
	})

	var raw bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration.

With --toml the output is valid TOML and can be saved as the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				data, err := c.cfg.Encode()
				if err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				_, err = stdout.Write(data)
				return err
			}
			printKeyValue("file", c.activeConfigPath())
			printKeyValue("log level", c.cfg.Log.Level)
			printKeyValue("x gap", strconv.FormatFloat(c.cfg.Layout.XGap, 'f', -1, 64))
			printKeyValue("y gap", strconv.FormatFloat(c.cfg.Layout.YGap, 'f', -1, 64))
			printKeyValue("radius", strconv.FormatFloat(c.cfg.Layout.Radius, 'f', -1, 64))
			printKeyValue("cache", c.cfg.Cache.Backend)
			printKeyValue("detailed", strconv.FormatBool(c.cfg.Render.Detailed))
			return nil
		},
	}
	show.Flags().BoolVar(&raw, "toml", false, "print the configuration as TOML")
	cmd.AddCommand(show)

	return cmd
}
