package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inkpress/inkctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage inkctl configuration",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter inkctl.yaml",
	Long: `Write inkctl.yaml in the current directory, populated with the
defaults. Edit the file, or override individual values with INKCTL_
environment variables (INKCTL_API_BASE_URL, INKCTL_LOG_LEVEL, ...).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "inkctl.yaml"
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		var cfg config.Config
		cfg.SetDefaults()
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging the config file, environment
variables, and defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return printResult(cfg, func() {
			if used := config.ConfigFileUsed(); used != "" {
				fmt.Fprintf(os.Stdout, "# from %s\n", used)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return
			}
			os.Stdout.Write(data)
		})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
