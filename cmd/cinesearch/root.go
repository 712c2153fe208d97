package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/cinesearch/internal/adapter"
	"github.com/mmcdole/cinesearch/internal/adapter/source"
	"github.com/mmcdole/cinesearch/internal/config"
	"github.com/mmcdole/cinesearch/internal/log"
	"github.com/mmcdole/cinesearch/internal/service"
	"github.com/mmcdole/cinesearch/internal/store"
	"github.com/mmcdole/cinesearch/internal/tui"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   *slog.Logger
)

// rootCmd starts the interactive search screen
var rootCmd = &cobra.Command{
	Use:   "cinesearch",
	Short: "Search the OMDb movie database from the terminal",
	Long: `cinesearch searches the OMDb movie database, lets you page through
results, open a detail view, and keep a list of favorite titles on disk.

Run without arguments for the interactive interface, or use the
subcommands for scripting.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runTUI,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/cinesearch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

// initializeApp loads configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err = log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinesearch", "version", Version, "command", cmd.Name(), "config", cfg.File())
	return nil
}

// app holds the services shared by every command
type app struct {
	store     *store.FavoritesStore
	search    *service.SearchService
	favorites *service.FavoritesService
	links     *service.LinkService
}

// openApp builds the services. It makes sure an API key is available
// first, prompting for one when running interactively.
func openApp() (*app, error) {
	if err := ensureAPIKey(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create OMDb client: %w", err)
	}

	st, err := store.NewFavoritesStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites: %w", err)
	}

	favorites := service.NewFavoritesService(st, logger)
	favorites.Load()

	return &app{
		store:     st,
		search:    service.NewSearchService(client, logger),
		favorites: favorites,
		links:     service.NewLinkService(adapter.NewOpener(cfg.UI.OpenCommand, cfg.UI.OpenArgs, logger), logger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Error("failed to close favorites store", "error", err)
	}
}

// runTUI runs the interactive interface
func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive interface needs a terminal; use the search, show, or fav subcommands instead")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.search, a.favorites, a.links, cfg.UI.LoadMoreThreshold)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
