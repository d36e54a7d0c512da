package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"subx/internal/api"
	"subx/internal/config"
	"subx/internal/cookies"
	"subx/internal/models"
	"subx/internal/ui"
)

var globalConfig *config.Config

var (
	plainOutput bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "subx",
	Short: "subx - Manage your subscription from the command line",
	Long: `subx talks to the subscription API: it purchases, renews, cancels and changes plans.
Requests carry the CSRF token found in the saved cookie store, see 'subx cookie set'.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(ctx context.Context, cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.ExecuteContext(ctx)
}

// session bundles what a command needs to talk to the API
type session struct {
	configDir string
	config    *config.Config
	cookies   *models.CookieStore
	logger    *slog.Logger
	closeLog  func()
}

func newSession() (*session, error) {
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting global config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating global config directory: %w", err)
	}

	cfg := globalConfig
	if cfg == nil {
		cfg, err = config.LoadGlobalConfig()
		if err != nil {
			return nil, fmt.Errorf("error loading global config: %w", err)
		}
	}

	// The dialog owns the terminal, so logs go to a file unless output is plain
	var logOut io.Writer = os.Stderr
	closeLog := func() {}
	if !plainOutput {
		f, err := os.OpenFile(logFilePath(configDir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		logOut = f
		closeLog = func() { _ = f.Close() }
	}

	return &session{
		configDir: configDir,
		config:    cfg,
		cookies:   models.NewCookieStore(configDir),
		logger:    newLogger(logOut),
		closeLog:  closeLog,
	}, nil
}

func (s *session) client() *api.Client {
	reader := cookies.NewReader(s.cookies, s.logger)
	return api.NewClient(s.config.ServerURL, reader, s.config.Timeout(), s.logger)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func logFilePath(configDir string) string {
	return filepath.Join(configDir, "subx.log")
}

// startFunc kicks off one background API call
type startFunc func(ctx context.Context, submitter *api.Submitter) <-chan api.Result

// runSubmission starts the call and presents its outcome, either in a
// dialog or as a console line when --plain is set.
func runSubmission(cmd *cobra.Command, title string, start startFunc) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.closeLog()

	ctx := cmd.Context()

	if plainOutput {
		console := &ui.Console{Out: cmd.OutOrStdout()}
		submitter := api.NewSubmitter(sess.client(), console, sess.logger)
		<-start(ctx, submitter)
		return nil
	}

	dialog := ui.NewDialog(title)
	submitter := api.NewSubmitter(sess.client(), dialog, sess.logger)
	start(ctx, submitter)

	if err := dialog.Run(); err != nil {
		return fmt.Errorf("error running dialog: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print the outcome instead of showing a dialog")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
