package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/h0rv/ghbrowse/internal/auth"
	"github.com/h0rv/ghbrowse/internal/config"
	"github.com/h0rv/ghbrowse/internal/gh"
	"github.com/h0rv/ghbrowse/internal/prefs"
	"github.com/h0rv/ghbrowse/internal/repository"
	"github.com/h0rv/ghbrowse/internal/store"
	"github.com/h0rv/ghbrowse/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	tokenFlag       string
	apiURLFlag      string
	prefsFlag       string
	logFlag         string
	logLevelFlag    string
	hotLanguageFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ghbrowse",
		Short: "Browse and search GitHub repositories from the terminal",
		Long: `ghbrowse is a terminal user interface for browsing GitHub.

Home shows hot repositories and trending topics, Search finds repositories
by language as you type, and Profile shows your repositories and lets you
file issues against them.

Authentication:
  1. --token flag or GHBROWSE_TOKEN
  2. GitHub CLI: Run 'gh auth login'
  3. Environment variable: Set GITHUB_TOKEN

Browsing and search work without a token. The profile sign-in accepts the
demo credentials HSBC / 123456 and then uses the configured token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	// Define CLI flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&tokenFlag, "token", "", "GitHub token. Overrides gh CLI and GITHUB_TOKEN.")
	pf.StringVar(&apiURLFlag, "api-url", "", "GitHub REST API base URL.")
	pf.StringVar(&prefsFlag, "prefs", "", "Preference database path.")
	pf.StringVar(&logFlag, "log", "", "Write debug logs to this file.")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error.")
	pf.StringVar(&hotLanguageFlag, "hot-language", "", "Language of the hot repositories feed.")

	rootCmd.AddCommand(newSearchCmd(), newLogoutCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads .env and the environment, then applies flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("token", &cfg.Token, tokenFlag)
	override("api-url", &cfg.APIURL, apiURLFlag)
	override("prefs", &cfg.PrefsPath, prefsFlag)
	override("log", &cfg.LogPath, logFlag)
	override("log-level", &cfg.LogLevel, logLevelFlag)
	override("hot-language", &cfg.HotLanguage, hotLanguageFlag)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to cfg.LogPath through tea.LogToFile, or discards.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}

	f, err := tea.LogToFile(cfg.LogPath, "ghbrowse")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
}

// newClient resolves the credential and builds the API client. A missing
// credential is not fatal: anonymous search still works.
func newClient(cfg *config.Config, logger *slog.Logger) (*gh.Client, error) {
	token, err := auth.GetToken(cfg.Token)
	if err != nil {
		if !errors.Is(err, auth.ErrNoCredential) {
			return nil, err
		}
		logger.Warn("running without a GitHub credential", slog.String("error", err.Error()))
	}

	client, err := gh.New(gh.Options{BaseURL: cfg.APIURL, Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

func openPrefs(cfg *config.Config, logger *slog.Logger) (*prefs.Store, error) {
	path := cfg.PrefsPath
	if path == "" {
		var err error
		if path, err = prefs.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return prefs.Open(path, logger)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	prefStore, err := openPrefs(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer prefStore.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	browse := repository.NewBrowse(client, cfg.HotLanguage)
	authRepo := repository.NewAuth(client, prefStore, logger)
	issueRepo := repository.NewIssue(client, logger)

	app := tui.NewAppModel(tui.Controllers{
		Home:   store.NewHome(ctx, browse, logger),
		Search: store.NewSearch(ctx, browse, logger),
		User:   store.NewUser(ctx, authRepo, logger),
		Issue:  store.NewIssue(ctx, issueRepo, logger),
	}, logger)

	logger.Info("starting", slog.Bool("authenticated", client.HasCredential()))

	// Run Bubble Tea program
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <language>",
		Short: "Print the most starred repositories for a language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}

			query := strings.TrimSpace(args[0])
			repos, err := repository.NewBrowse(client, cfg.HotLanguage).
				SearchRepositories(cmd.Context(), "language:"+query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(repos) == 0 {
				fmt.Fprintf(out, "No repositories found for %q\n", query)
				return nil
			}
			for _, r := range repos {
				fmt.Fprintf(out, "%-40s ★ %-8s %s\n", r.FullName(), humanize.Comma(int64(r.Stars)), r.Description)
			}
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

			s, err := openPrefs(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to open preferences: %w", err)
			}
			defer s.Close()

			if err := s.ClearUser(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
