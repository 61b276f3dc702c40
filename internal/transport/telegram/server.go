package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type uGame interface {
	Start(ctx context.Context, sessionID string) (*entity.Session, error)
	End(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, row, col int) (*entity.TurnResult, error)
}

type Server struct {
	logger      *slog.Logger
	bot         botAPI
	uGame       uGame
	pollTimeout int

	handlers map[string]func(ctx context.Context, message *tgbotapi.Message) error
}

func New(logger *slog.Logger, bot botAPI, uGame uGame, pollTimeout int) *Server {
	server := &Server{
		logger:      logger.With("component", "telegram"),
		bot:         bot,
		uGame:       uGame,
		pollTimeout: pollTimeout,

		handlers: make(map[string]func(context.Context, *tgbotapi.Message) error),
	}

	server.handlers[commandStart] = server.handleStart
	server.handlers[commandHelp] = server.handleHelp

	return server
}

// NewBotAPI logs in with the token.
func NewBotAPI(token string, debug bool) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot.Debug = debug

	return bot, nil
}

// Start - polls updates until ctx is canceled. Every update is handled in its own goroutine.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = that.pollTimeout

	updates := that.bot.GetUpdatesChan(updateConfig)

	var wg sync.WaitGroup
	defer wg.Wait()

	log.Info("polling telegram updates")

	for {
		select {
		case <-ctx.Done():
			that.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				that.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate - routes one update to the command or callback handler.
func (that *Server) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := that.logger.With("method", "HandleUpdate", "updateID", update.UpdateID)

	switch {
	case update.Message != nil && update.Message.IsCommand():
		handler, ok := that.handlers[update.Message.Command()]
		if !ok {
			handler = that.handleHelp
		}

		if err := handler(ctx, update.Message); err != nil {
			log.Error("error processing command", "command", update.Message.Command(), "error", err)
		}
	case update.Message != nil:
		if err := that.handleHelp(ctx, update.Message); err != nil {
			log.Error("error processing message", "error", err)
		}
	case update.CallbackQuery != nil:
		if err := that.handleCallback(ctx, update.CallbackQuery); err != nil {
			log.Error("error processing callback", "data", update.CallbackQuery.Data, "error", err)
		}
	}
}
