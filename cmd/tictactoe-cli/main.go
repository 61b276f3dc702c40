package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiselevME/tictactoe-bot/internal/repository/memory"
	"github.com/kiselevME/tictactoe-bot/internal/service"
	"github.com/kiselevME/tictactoe-bot/internal/tictactoe"
	"github.com/kiselevME/tictactoe-bot/internal/transport/console"
	"github.com/kiselevME/tictactoe-bot/internal/usecase"
)

// main - plays tic-tac-toe against the bot in the terminal.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the board goes to stdout, logs only on warnings
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	gameManager := usecase.NewGameManager(
		logger,
		memory.NewSessionStore(),
		tictactoe.NewGameController(service.NewBotService(nil)),
	)

	if err := console.New(logger, gameManager, os.Stdin, os.Stdout).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "game failed: %v\n", err)
		os.Exit(1)
	}
}
