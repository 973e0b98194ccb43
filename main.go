package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-tui/internal"
	"github.com/rocketscienceinc/tictactoe-tui/internal/config"
	"github.com/rocketscienceinc/tictactoe-tui/internal/transport/cli"
)

// main - is the entry point of the application. It parses the command line and plays one game.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	root := cli.NewRootCommand(play)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func play(ctx context.Context, out io.Writer, opts cli.Options) error {
	conf := initConfig(opts.ConfigPath)

	logger, closeLog, err := initLogger(conf)
	if err != nil {
		return err
	}
	defer closeLog()

	if err = app.RunApp(ctx, logger, conf, out, opts); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// initialize config.
func initConfig(path string) *config.Config {
	return config.MustLoad(path)
}

// initialize logger. Stdout belongs to the game, so records go to the log file or nowhere.
func initLogger(conf *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var (
		out      io.Writer = io.Discard
		closeLog           = func() {}
	)

	if conf.LogFile != "" {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}

		out = file
		closeLog = func() { _ = file.Close() }
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), closeLog, nil
}
