package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/mmcdole/gifgrid/internal/giphy"
	"github.com/mmcdole/gifgrid/internal/log"
	"github.com/mmcdole/gifgrid/internal/search"
	"github.com/mmcdole/gifgrid/internal/urlsync"
	"github.com/urfave/cli/v3"
)

var (
	indexStyle = color.New(color.FgCyan)
	titleStyle = color.New(color.Bold)
	urlStyle   = color.New(color.Faint)
	moreStyle  = color.New(color.FgYellow)
	linkStyle  = color.New(color.FgGreen)
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a one-shot search and print the results",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page to fetch",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Keep loading pages until the results are exhausted",
			},
			&cli.IntFlag{
				Name:  "max-pages",
				Usage: "Stop --all after this many pages (0 = until the API limit)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			term := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if term == "" {
				return errors.New("search term required")
			}
			opts := searchOptions{
				Page:      max(int(c.Int("page")), 1),
				All:       c.Bool("all"),
				MaxPages:  max(int(c.Int("max-pages")), 0),
				MaxOffset: giphy.MaxOffset,
			}
			return runSearch(ctx, c.String("config"), term, opts, os.Stdout)
		},
	}
}

// runSearch drives a controller through one or more windows and prints each
// window as it arrives
func runSearch(ctx context.Context, configPath, term string, opts searchOptions, w io.Writer) error {
	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	logger := log.ConsoleLogger(os.Stderr, cfg.Logging.Level)

	client, err := newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}
	ctrl, err := newController(cfg, logger)
	if err != nil {
		return err
	}

	opts.Timeout = cfg.Giphy.Timeout
	return searchPages(ctx, client, ctrl, term, opts, w)
}

// searchOptions controls how many windows a one-shot search fetches
type searchOptions struct {
	Page      int
	All       bool
	MaxPages  int // with All, 0 = no page limit
	MaxOffset int // windows starting beyond this are never requested, 0 = none
	Timeout   time.Duration
}

func (o searchOptions) beyondLimit(req search.Request) bool {
	return o.MaxOffset > 0 && req.Offset > o.MaxOffset
}

func searchPages(ctx context.Context, client domain.SearchClient, ctrl *search.Controller, term string, opts searchOptions, w io.Writer) error {
	req, ok := ctrl.Restore(term, opts.Page)
	if ok && opts.beyondLimit(req) {
		return fmt.Errorf("page %d is beyond the last page the API serves", req.Page)
	}

	printed, fetched := 0, 0
	var atLimit, atMaxPages bool
	for ok {
		resp := search.Fetch(ctx, client, req, opts.Timeout)
		fetched++
		ctrl.Apply(resp)
		if resp.Err != nil {
			return fmt.Errorf("%s: %w", search.ErrorMessage, resp.Err)
		}

		state := ctrl.State()
		for i, gif := range state.Items[printed:] {
			printGif(w, state.Cursor.Offset+i+1, gif)
		}
		printed = len(state.Items)

		if !opts.All {
			break
		}
		if opts.MaxPages > 0 && fetched >= opts.MaxPages {
			atMaxPages = ctrl.HasMore()
			break
		}
		req, ok = ctrl.LoadMore()
		if ok && opts.beyondLimit(req) {
			atLimit = true
			break
		}
	}

	state := ctrl.State()
	fmt.Fprintln(w)
	if len(state.Items) == 0 {
		fmt.Fprintf(w, "No GIFs found for %q\n", term)
		return nil
	}

	fmt.Fprintf(w, "%d GIFs for %q · page %d\n", len(state.Items), state.Committed, state.Cursor.Page)
	switch {
	case atLimit:
		moreStyle.Fprintln(w, "Reached the last page the API serves")
	case atMaxPages:
		moreStyle.Fprintf(w, "Stopped after %d pages (--page %d continues)\n", fetched, state.Cursor.Page+1)
	case state.HasMore:
		moreStyle.Fprintf(w, "More results available (--page %d)\n", state.Cursor.Page+1)
	}
	linkStyle.Fprintln(w, urlsync.Link(state.Committed, state.Cursor.Page))
	return nil
}

func printGif(w io.Writer, n int, gif domain.Gif) {
	fmt.Fprintf(w, "%s %s", indexStyle.Sprintf("%3d.", n), titleStyle.Sprint(gif.DisplayTitle()))
	if dims := gif.Dimensions(); dims != "" {
		fmt.Fprintf(w, " %s", urlStyle.Sprintf("(%s)", dims))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "     %s\n", urlStyle.Sprint(gif.BestURL()))
}
