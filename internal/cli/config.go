package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/slugnorris/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the slugnorris configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if raw {
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintf(out, "Extensions: %s\n", strings.Join(cfg.Rename.Extensions, " "))
			fmt.Fprintf(out, "Underscore Extensions: %s\n", strings.Join(cfg.Rename.UnderscoreExtensions, " "))
			fmt.Fprintf(out, "Prefixes: %q\n", cfg.Rename.Prefixes)
			fmt.Fprintf(out, "Suffixes: %q\n", cfg.Rename.Suffixes)
			fmt.Fprintf(out, "Max Length: %d\n", cfg.Rename.MaxLength)
			fmt.Fprintf(out, "Num Digits: %d\n", cfg.Rename.NumDigits)
			fmt.Fprintf(out, "Ignored Stems: %s\n", strings.Join(cfg.Ignore.Stems, " "))
			fmt.Fprintf(out, "Ignore Globs: %s\n", strings.Join(cfg.Ignore.Globs, " "))
			fmt.Fprintf(out, "Path Limits: warn %d, error %d\n", cfg.Limits.Warn, cfg.Limits.Error)
			fmt.Fprintf(out, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "yaml", false, "print the configuration as YAML")

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := globalFlags.ConfigFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !overwrite {
				return fmt.Errorf("configuration file already exists: %s (use --overwrite to replace it)", path)
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing configuration file")

	return cmd
}
