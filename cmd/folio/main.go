// Package main provides the CLI entrypoint for folio.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/folio/internal/config"
	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/content"
	"github.com/verte-zerg/folio/internal/inbox"
	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/store"
	"github.com/verte-zerg/folio/internal/tui"
)

const dotenvPath = ".env"

var (
	pageContent       string
	pageReducedMotion bool
	pageTypingSpeedMs int
	pageTypingDelayMs int
	pageNoStore       bool

	messagesSince string
	messagesLimit int

	contentWrite bool
	contentForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "Animated terminal portfolio",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPageCmd,
	}

	rootCmd.Flags().StringVar(&pageContent, "content", "", "content file (.toml, .yaml or .yml)")
	rootCmd.Flags().BoolVar(&pageReducedMotion, "reduced-motion", false, "show everything without animation")
	rootCmd.Flags().IntVar(&pageTypingSpeedMs, "typing-speed-ms", -1, "delay per typed character (default: from content)")
	rootCmd.Flags().IntVar(&pageTypingDelayMs, "typing-delay-ms", -1, "delay before typing starts (default: from content)")
	rootCmd.Flags().BoolVar(&pageNoStore, "no-store", false, "do not save contact form messages")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newContentCmd())
	rootCmd.AddCommand(newMessagesCmd())

	return rootCmd
}

// loadSettings reads the environment and the config file it points to.
func loadSettings() (config.Env, config.FileConfig, error) {
	envCfg, err := config.LoadEnv(dotenvPath)
	if err != nil {
		return config.Env{}, config.FileConfig{}, err
	}
	path := envCfg.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Env{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return envCfg, fileCfg, nil
}

func dbPath(envCfg config.Env) string {
	if envCfg.DBPath != "" {
		return envCfg.DBPath
	}
	return config.DefaultDBPath()
}

func runPageCmd(cmd *cobra.Command, _ []string) error {
	envCfg, fileCfg, err := loadSettings()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "content", &pageContent, fileCfg.Page.Content)
	applyBoolConfig(cmd, "reduced-motion", &pageReducedMotion, fileCfg.Page.ReducedMotion)
	applyIntConfig(cmd, "typing-speed-ms", &pageTypingSpeedMs, fileCfg.Page.TypingSpeedMs)
	applyIntConfig(cmd, "typing-delay-ms", &pageTypingDelayMs, fileCfg.Page.TypingDelayMs)
	applyBoolConfig(cmd, "no-store", &pageNoStore, fileCfg.Page.NoStore)
	if envCfg.ContentPath != "" {
		applyStringConfig(cmd, "content", &pageContent, &envCfg.ContentPath)
	}
	if envCfg.ReducedMotion {
		applyBoolConfig(cmd, "reduced-motion", &pageReducedMotion, &envCfg.ReducedMotion)
	}

	cfg := model.Config{
		ContentPath:   pageContent,
		ReducedMotion: pageReducedMotion,
		TypingSpeedMs: pageTypingSpeedMs,
		TypingDelayMs: pageTypingDelayMs,
		NoStore:       pageNoStore,
	}

	portfolio, err := loadContent(cfg.ContentPath)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if envCfg.LogPath != "" {
		f, err := tea.LogToFile(envCfg.LogPath, "folio")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			// Best-effort log close.
			_ = f.Close()
		}()
		logger = log.Default()
	}

	var sink contact.Sink
	if !cfg.NoStore {
		st, err := store.Open(dbPath(envCfg))
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		sink = st
	}

	page, err := tui.NewModel(cfg, portfolio, sink, logger)
	if err != nil {
		return fmt.Errorf("failed to build page: %w", err)
	}
	program := tea.NewProgram(page, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadContent reads path, or the default content location when path is empty.
// Without either file the embedded content is used.
func loadContent(path string) (content.Portfolio, error) {
	if path == "" {
		path = config.DefaultContentPath()
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return content.Default()
			}
			return content.Portfolio{}, fmt.Errorf("failed to stat content: %w", err)
		}
	}
	p, err := content.Load(path)
	if err != nil {
		return content.Portfolio{}, fmt.Errorf("failed to load content %s: %w", path, err)
	}
	return p, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	envCfg, err := config.LoadEnv(dotenvPath)
	if err != nil {
		return err
	}
	path := envCfg.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return openEditor(path)
}

func openEditor(path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Print or write the default content file",
		Args:  cobra.NoArgs,
		RunE:  runContentCmd,
	}
	cmd.Flags().BoolVar(&contentWrite, "write", false, "write to the default content path instead of stdout")
	cmd.Flags().BoolVar(&contentForce, "force", false, "overwrite an existing content file")
	return cmd
}

func runContentCmd(cmd *cobra.Command, _ []string) error {
	data := content.DefaultTOML()
	if !contentWrite {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	path := config.DefaultContentPath()
	if err := writeContentFile(path, data, contentForce); err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func writeContentFile(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("content file already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat content file: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "content-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp content file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write content file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close content file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write content file: %w", err)
	}
	return nil
}

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Browse contact form messages",
		Args:  cobra.NoArgs,
		RunE:  runMessagesCmd,
	}
	cmd.Flags().StringVar(&messagesSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&messagesLimit, "limit", 0, "show at most N messages")
	return cmd
}

func runMessagesCmd(cmd *cobra.Command, _ []string) error {
	envCfg, fileCfg, err := loadSettings()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "limit", &messagesLimit, fileCfg.Inbox.Limit)
	if messagesLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	since, err := inbox.ParseSince(messagesSince)
	if err != nil {
		return fmt.Errorf("invalid --since value: %w", err)
	}
	cfg := model.InboxConfig{Limit: messagesLimit, Since: since}

	st, err := store.Open(dbPath(envCfg))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		msgs, err := st.ListMessages(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to list messages: %w", err)
		}
		return inbox.WriteTable(cmd.OutOrStdout(), msgs)
	}

	ui := inbox.NewModel(st, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run inbox TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# folio configuration
# Uncomment a value to enable it. CLI flags override config values,
# FOLIO_CONTENT and FOLIO_REDUCED_MOTION override the [page] table.

[page]
# content = %q            # Content file (.toml, .yaml or .yml)
# reduced-motion = false  # Show everything without animation
# typing-speed-ms = 80    # Delay per typed character
# typing-delay-ms = 2500  # Delay before typing starts
# no-store = false        # Do not save contact form messages

[inbox]
# limit = 50              # Show at most N messages
`,
		config.DefaultContentPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
