package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gifgrid/internal/config"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/mmcdole/gifgrid/internal/giphy"
	"github.com/mmcdole/gifgrid/internal/launcher"
	"github.com/mmcdole/gifgrid/internal/log"
	"github.com/mmcdole/gifgrid/internal/search"
	"github.com/mmcdole/gifgrid/internal/store"
	"github.com/mmcdole/gifgrid/internal/tui"
	"github.com/mmcdole/gifgrid/internal/urlsync"
	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	app := &cli.Command{
		Name:  "gifgrid",
		Usage: "Search GIPHY from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Local:   true,
				Usage:   "Start with a search for this term",
			},
			&cli.IntFlag{
				Name:  "page",
				Local: true,
				Usage: "Page to open with --query",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "link",
				Local: true,
				Usage: "Open a gifgrid:// search link",
			},
			&cli.BoolFlag{
				Name:  "fresh",
				Local: true,
				Usage: "Ignore the last session's search",
			},
			&cli.BoolFlag{
				Name:  "no-persist",
				Local: true,
				Usage: "Keep the session and recent terms in memory only",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			searchCommand(),
			historyCommand(),
			setupCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Printf("gifgrid %s\n", Version)
			return nil
		},
	}
}

// loadConfig loads the configuration, running setup first when no API key is known
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.IsConfigured() {
		return cfg, nil
	}

	logger := log.ConsoleLogger(os.Stderr, cfg.Logging.Level)
	if err := runSetup(ctx, cfg, path, logger); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the GIPHY client from configuration
func newClient(cfg *config.Config, logger *slog.Logger) (*giphy.Client, error) {
	return giphy.NewClient(cfg.Giphy.APIKey, logger,
		giphy.WithBaseURL(cfg.Giphy.BaseURL),
		giphy.WithRating(cfg.Giphy.Rating),
		giphy.WithLang(cfg.Giphy.Lang),
		giphy.WithTimeout(cfg.Giphy.Timeout),
	)
}

// newController builds a search controller with the configured pagination
func newController(cfg *config.Config, logger *slog.Logger) (*search.Controller, error) {
	strategy, err := search.NewStrategy(string(cfg.Search.Pagination), cfg.Search.PageSize)
	if err != nil {
		return nil, err
	}
	return search.NewController(cfg.Search.PageSize, strategy, logger), nil
}

func runTUI(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(ctx, c.String("config"))
	if err != nil {
		return err
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting gifgrid", "version", Version)

	client, err := newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	ctrl, err := newController(cfg, logger)
	if err != nil {
		return err
	}

	persist := !c.Bool("no-persist")
	dir := cfg.Storage.Path
	if !persist {
		dir = ""
	}
	st, err := store.Open(dir, cfg.Search.HistorySize, logger)
	if err != nil {
		logger.Warn("session store unavailable, continuing in memory", "error", err)
		st, err = store.Open("", cfg.Search.HistorySize, logger)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
	}
	defer st.Close()

	opts := tui.Options{
		Client:      client,
		Controller:  ctrl,
		Debounce:    cfg.Search.Debounce,
		Timeout:     cfg.Giphy.Timeout,
		History:     st,
		Opener:      launcher.New(cfg.Viewer.Command, cfg.Viewer.Args, logger),
		TileWidth:   cfg.UI.TileWidth,
		GridColumns: cfg.UI.GridColumns,
		Logger:      logger,
	}
	if cfg.Search.URLSync && persist {
		opts.Location = st.Location()
	} else {
		opts.Location = urlsync.NewMemoryLocation("")
	}
	opts.InitialTerm, opts.InitialPage = initialSearch(c, opts.Location)

	model := tui.NewModel(opts)
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("starting TUI", "term", opts.InitialTerm, "page", opts.InitialPage)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// initialSearch picks the search to restore: --link, then --query and
// --page, then the saved location unless --fresh was given
func initialSearch(c *cli.Command, loc domain.Location) (string, int) {
	switch {
	case c.String("link") != "":
		return urlsync.ParseLink(c.String("link"))
	case c.String("query") != "":
		return c.String("query"), max(int(c.Int("page")), 1)
	case c.Bool("fresh"):
		return "", 1
	default:
		return urlsync.New(loc).Read()
	}
}
