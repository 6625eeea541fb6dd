package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"pricepulse/internal/app"
	"pricepulse/internal/client"
	"pricepulse/internal/config"
	"pricepulse/internal/mock"
	"pricepulse/internal/pipeline"
)

func main() {
	cliApp := &cli.App{
		Name:  "pricepulse",
		Usage: "Watch AI pricing agents think, live in your terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Usage:   "Backend URL (overrides PRICEPULSE_BACKEND_URL)",
			},
			&cli.StringFlag{
				Name:    "pipeline",
				Aliases: []string{"p"},
				Usage:   "Starting pipeline: pricing, launch, crisis or trends",
				Value:   "pricing",
			},
			&cli.BoolFlag{
				Name:  "simulate",
				Usage: "Ask the backend for scripted responses instead of live analysis",
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Run the simulated backend instead of the TUI",
			},
			&cli.IntFlag{
				Name:  "mock-port",
				Usage: "Port for the simulated backend",
				Value: 8000,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Write debug logs to pricepulse.log",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := c.String("backend"); v != "" {
		cfg.BackendURL = v
	}
	if c.Bool("simulate") {
		cfg.Simulate = true
	}

	if c.Bool("mock") {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		}))
		return mock.NewServer(c.Int("mock-port"), logger).Start()
	}

	logger, closeLog, err := tuiLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer closeLog()

	id := pipeline.ID(c.String("pipeline"))
	if _, ok := pipeline.Get(id); !ok {
		return fmt.Errorf("unknown pipeline %q", id)
	}

	backend := client.New(cfg.BackendURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
	)

	model := app.New(backend, cfg.Simulate)
	model.SetPipeline(id)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiLogger returns a logger safe to use while the TUI owns the terminal.
// Without verbose everything is discarded; with it, logs go to a file.
func tuiLogger(verbose bool) (*slog.Logger, func(), error) {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile("pricepulse.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { f.Close() }, nil
}
