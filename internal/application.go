package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-tui/internal/config"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tui/internal/repository"
	"github.com/rocketscienceinc/tictactoe-tui/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-tui/internal/transport/app"
	"github.com/rocketscienceinc/tictactoe-tui/internal/transport/cli"
	"github.com/rocketscienceinc/tictactoe-tui/internal/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-tui/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - plays one game on the configured storage and front-end, then prints the final board to out.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, out io.Writer, opts cli.Options) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	size := opts.BoardSize
	if size == 0 {
		size = conf.BoardSize
	}

	gameRepo, closeStorage, err := openGameRepository(ctx, conf.Storage)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	games := usecase.NewGameManager(logger, gameRepo)

	log.Info("Starting game", "size", size, "storage", conf.Storage.Type, "launch_app", opts.LaunchApp)

	state, message, runErr := play(ctx, logger, games, size, opts.LaunchApp)

	if err = printOutcome(out, state, message); err != nil {
		return errors.Join(runErr, err)
	}

	return runErr
}

func play(
	ctx context.Context,
	logger *slog.Logger,
	games *usecase.GameManager,
	size int,
	launchApp bool,
) (*entity.GameState, string, error) {
	if launchApp {
		result, err := app.New(logger, nil, games).Run(ctx, size)
		if result == nil {
			return nil, "", err
		}
		return result.State, result.Message, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, "", fmt.Errorf("could not open terminal: %w", err)
	}

	result, err := terminal.New(logger, screen, games).Run(ctx, size)
	if result == nil {
		return nil, "", err
	}
	return result.State, result.Message, err
}

// openGameRepository - the save-game backend named by the config and a func releasing it.
func openGameRepository(ctx context.Context, conf config.Storage) (repository.GameRepository, func() error, error) {
	switch conf.Type {
	case config.StorageRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisGameRepository(redisStorage.Connection, conf.Redis.Key), redisStorage.Close, nil
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteGameRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return repository.NewFileGameRepository(conf.SaveFile), func() error { return nil }, nil
	}
}

// printOutcome - the last frame as plain text, written after the terminal is restored.
func printOutcome(out io.Writer, state *entity.GameState, message string) error {
	if state == nil {
		if message == "" {
			return nil
		}
		_, err := fmt.Fprintln(out, message)
		return err
	}

	text, err := terminal.RenderText(state, message)
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, text)
	return err
}
