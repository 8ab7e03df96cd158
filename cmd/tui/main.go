package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/codeexplainer/server/internal/config"
	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/logger"
	"codeberg.org/codeexplainer/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	backendURL string
	language   string
	logFile    string
	timeout    time.Duration
	markdown   bool
)

var rootCmd = &cobra.Command{
	Use:   "codeexplainer",
	Short: "Explain, debug and analyse code from the terminal",
	Long: `codeexplainer sends pasted code to the AI backend and shows the answer.

Keys: ctrl+e explain, ctrl+d debug, ctrl+t time complexity,
ctrl+p (or enter in the question field) custom prompt, tab switch field,
ctrl+l clear output, ctrl+c quit.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&backendURL, "backend", "", "backend base URL (default: BACKEND_BASE_URL)")
	rootCmd.Flags().StringVar(&language, "language", "", "language used to highlight corrected code (default: HIGHLIGHT_LANGUAGE)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file (default: LOG_FILE or codeexplainer-tui.log in the temp dir)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request backend timeout, 0 waits indefinitely")
	rootCmd.Flags().BoolVar(&markdown, "markdown", false, "render explanations as markdown (default: RENDER_MARKDOWN)")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs always go to a file
	path := logFile
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		path = filepath.Join(os.TempDir(), "codeexplainer-tui.log")
	}

	logger.Configure(logger.Options{Environment: cfg.Environment, File: path})
	defer logger.Close() //nolint:errcheck

	client, err := explainer.NewClient(explainer.ClientConfig{
		BaseURL:   cfg.BackendBaseURL,
		Timeout:   cfg.BackendTimeout,
		RateLimit: cfg.BackendRateLimit,
		Burst:     cfg.BackendBurst,
	})
	if err != nil {
		return err
	}

	logger.Info("starting codeexplainer tui", "backend", client.Endpoint())

	app := tui.NewApp(tui.Options{
		Explainer: explainer.New(client),
		Language:  cfg.HighlightLanguage,
		Markdown:  cfg.RenderMarkdown,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running codeexplainer: %w", err)
	}

	return nil
}

// copies the flags that were set over cfg and checks the result again
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if backendURL != "" {
		cfg.BackendBaseURL = backendURL
	}

	if language != "" {
		cfg.HighlightLanguage = language
	}

	if cmd.Flags().Changed("timeout") {
		cfg.BackendTimeout = timeout
	}

	if cmd.Flags().Changed("markdown") {
		cfg.RenderMarkdown = markdown
	}

	if err := cfg.ValidateBackend(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
