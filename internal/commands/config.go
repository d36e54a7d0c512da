package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subx/internal/config"
	"subx/internal/models"
)

var (
	// Variables to hold flag values
	serverURL      string
	timeoutSeconds int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage subx configuration",
	Long:  "View and update subx configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Fprintln(out, "Current configuration:")
			fmt.Fprintf(out, "Server URL: %s\n", cfg.ServerURL)
			if cfg.TimeoutSeconds > 0 {
				fmt.Fprintf(out, "Timeout: %s\n", cfg.Timeout())
			} else {
				fmt.Fprintln(out, "Timeout: none")
			}
			return nil
		}

		// Show specific config value
		switch args[0] {
		case "server-url":
			fmt.Fprintln(out, cfg.ServerURL)
		case "timeout":
			fmt.Fprintln(out, cfg.TimeoutSeconds)
		default:
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  "Update configuration settings like server URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()

		// Update configuration based on provided flags
		configUpdated := false

		if serverURL != "" {
			oldURL := cfg.ServerURL
			cfg.ServerURL = serverURL
			fmt.Fprintf(out, "Server URL updated: %s -> %s\n", oldURL, serverURL)
			configUpdated = true
		}

		if cmd.Flags().Changed("timeout") {
			if timeoutSeconds < 0 {
				return fmt.Errorf("timeout must not be negative")
			}
			cfg.TimeoutSeconds = timeoutSeconds
			fmt.Fprintf(out, "Timeout updated: %ds\n", timeoutSeconds)
			configUpdated = true
		}

		// Save configuration if it was updated
		if configUpdated {
			if err := config.SaveGlobalConfig(cfg); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			globalConfig = cfg
			_, _ = color.New(color.FgGreen).Fprintln(out, "Configuration updated successfully.")
		} else {
			fmt.Fprintln(out, "No changes were made to the configuration.")
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		out := cmd.OutOrStdout()

		// Check if config file exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintln(out, "Configuration file already exists.")
			fmt.Fprintln(out, "Use 'subx config set' to modify existing configuration.")
			return nil
		}

		// Create default configuration
		cfg := &config.Config{
			ServerURL: config.DefaultServerURL,
		}

		// Override defaults with provided flags
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		globalConfig = cfg

		_, _ = color.New(color.FgGreen).Fprintln(out, "Configuration initialized successfully.")
		fmt.Fprintf(out, "Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration file, cookie store and log file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		paths := []struct {
			label string
			path  string
		}{
			{"Config file", filepath.Join(configDir, "config.json")},
			{"Cookie store", models.NewCookieStore(configDir).CookieFile},
			{"Log file", logFilePath(configDir)},
		}

		fmt.Fprintf(out, "Config directory: %s\n", configDir)
		for _, p := range paths {
			status := "does not exist"
			if _, err := os.Stat(p.path); err == nil {
				status = "exists"
			}
			fmt.Fprintf(out, "- %s: %s (%s)\n", p.label, p.path, status)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	configSetCmd.Flags().StringVar(&serverURL, "server-url", "", "Set API server URL")
	configSetCmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Set request timeout in seconds (0 disables it)")

	configInitCmd.Flags().StringVar(&serverURL, "server-url", "", "Set API server URL")
}
