package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mmcdole/gifgrid/internal/config"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/mmcdole/gifgrid/internal/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the GIPHY API key",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runSetup(ctx, cfg, c.String("config"), log.ConsoleLogger(os.Stderr, cfg.Logging.Level))
		},
	}
}

// runSetup prompts for an API key and saves the configuration
func runSetup(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to gifgrid!")
	fmt.Println()
	fmt.Println("Create a free API key at https://developers.giphy.com/dashboard/")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Print("GIPHY API key: ")
		key, err := readSecret(reader)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.Giphy.APIKey = key
		break
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Debug("saved configuration", "path", path)

	fmt.Println()
	color.New(color.FgGreen).Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: no input", domain.ErrMissingAPIKey)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
