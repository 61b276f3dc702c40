package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiselevME/tictactoe-bot/internal/config"
	"github.com/kiselevME/tictactoe-bot/internal/repository"
	"github.com/kiselevME/tictactoe-bot/internal/repository/memory"
	"github.com/kiselevME/tictactoe-bot/internal/repository/storage"
	"github.com/kiselevME/tictactoe-bot/internal/service"
	"github.com/kiselevME/tictactoe-bot/internal/tictactoe"
	"github.com/kiselevME/tictactoe-bot/internal/transport/telegram"
	"github.com/kiselevME/tictactoe-bot/internal/usecase"
	"github.com/kiselevME/tictactoe-bot/transport/rest"
)

var (
	ErrAddrNotFound    = errors.New("redis address string is empty")
	ErrUnknownStorage  = errors.New("unknown storage backend")
	ErrTokenNotDefined = errors.New("telegram token is not set")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Telegram.Token == "" {
		return ErrTokenNotDefined
	}

	sessions, closeStore, err := newSessionStore(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	gameController := tictactoe.NewGameController(service.NewBotService(nil))
	gameManager := usecase.NewGameManager(logger, sessions, gameController)

	bot, err := telegram.NewBotAPI(conf.Telegram.Token, conf.Telegram.Debug)
	if err != nil {
		return fmt.Errorf("could not connect to telegram: %w", err)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Telegram bot
	tgErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting Telegram bot", "account", bot.Self.UserName)
		if tgErr := telegram.New(logger, bot, gameManager, conf.Telegram.PollTimeout).Start(ctx); tgErr != nil {
			log.Error("Telegram bot error", "error", tgErr)
			tgErrCh <- tgErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-tgErrCh:
		return fmt.Errorf("telegram bot error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newSessionStore(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	switch conf.Storage {
	case config.StorageMemory:
		return memory.NewSessionStore(), func() {}, nil
	case config.StorageRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeStore := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewSessionRepository(redisStorage, conf.Redis.SessionTTL), closeStore, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownStorage, conf.Storage)
	}
}
