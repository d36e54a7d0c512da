package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subx/internal/config"
	"subx/internal/cookies"
	"subx/internal/models"
)

var cookieCmd = &cobra.Command{
	Use:   "cookie",
	Short: "Manage the saved cookie store",
	Long: `Manage the cookie string sent with API requests. Paste the value of document.cookie
from a logged-in browser session to reuse its csrftoken.`,
}

var cookieSetCmd = &cobra.Command{
	Use:   "set <cookie-string>",
	Short: "Save a cookie string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cookieStore()
		if err != nil {
			return err
		}

		if err := store.SaveCookies(args[0]); err != nil {
			return fmt.Errorf("error saving cookies: %w", err)
		}

		if _, ok := cookies.Lookup(args[0], models.CSRFCookieName); !ok {
			_, _ = color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "Warning: no %s cookie found, requests will be sent without a CSRF token\n", models.CSRFCookieName)
		}

		_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Cookies saved")
		return nil
	},
}

var cookieGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show the value of a saved cookie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cookieStore()
		if err != nil {
			return err
		}

		value, ok := cookies.NewReader(store, nil).Get(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrCookieNotFound, args[0])
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	},
}

var cookieClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved cookie string",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cookieStore()
		if err != nil {
			return err
		}

		if err := store.ClearCookies(); err != nil {
			return fmt.Errorf("error clearing cookies: %w", err)
		}

		_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Cookies cleared")
		return nil
	},
}

func cookieStore() (*models.CookieStore, error) {
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting global config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating global config directory: %w", err)
	}

	return models.NewCookieStore(configDir), nil
}

func init() {
	rootCmd.AddCommand(cookieCmd)
	cookieCmd.AddCommand(cookieSetCmd)
	cookieCmd.AddCommand(cookieGetCmd)
	cookieCmd.AddCommand(cookieClearCmd)
}
