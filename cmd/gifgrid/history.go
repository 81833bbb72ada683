package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mmcdole/gifgrid/internal/config"
	"github.com/mmcdole/gifgrid/internal/store"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear recent search terms",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withStore(c.String("config"), func(st *store.Store) error {
				return listHistory(st, os.Stdout)
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Forget recent search terms",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Also forget the last session's search",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withStore(c.String("config"), func(st *store.Store) error {
						return clearHistory(st, c.Bool("all"), os.Stdout)
					})
				},
			},
		},
	}
}

// withStore opens the session store configured at configPath for fn
func withStore(configPath string, fn func(*store.Store) error) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Storage.Path == "" {
		return fmt.Errorf("no storage path configured")
	}

	st, err := store.Open(cfg.Storage.Path, cfg.Search.HistorySize, nil)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer st.Close()

	return fn(st)
}

func listHistory(st *store.Store, w io.Writer) error {
	terms := st.RecentTerms()
	if len(terms) == 0 {
		fmt.Fprintln(w, "No recent searches")
		return nil
	}
	for i, term := range terms {
		fmt.Fprintf(w, "%s %s\n", indexStyle.Sprintf("%3d.", i+1), term)
	}
	return nil
}

func clearHistory(st *store.Store, all bool, w io.Writer) error {
	if all {
		if err := st.Reset(); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
		color.New(color.FgGreen).Fprintln(w, "✓ Cleared recent searches and the saved session")
		return nil
	}

	if err := st.ClearHistory(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	color.New(color.FgGreen).Fprintln(w, "✓ Cleared recent searches")
	return nil
}
