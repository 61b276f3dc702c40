package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/pkg"
)

func (that *Server) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	log := that.logger.With("method", "handleStart", "chatID", msg.Chat.ID)

	sessionID := pkg.ChatSessionID(msg.Chat.ID, userID(msg.From))

	session, err := that.uGame.Start(ctx, sessionID)
	if err != nil {
		log.Error("failed to start game", "error", err)
		return that.sendText(msg.Chat.ID, MessageFailure)
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, MessageYourTurn)
	reply.ReplyMarkup = generateKeyboard(session.Board, false)

	if _, err = that.bot.Send(reply); err != nil {
		return fmt.Errorf("failed to send board: %w", err)
	}

	log.Info("game started", "sessionID", sessionID)

	return nil
}

func (that *Server) handleHelp(_ context.Context, msg *tgbotapi.Message) error {
	return that.sendText(msg.Chat.ID, MessageHelp)
}

func (that *Server) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	log := that.logger.With("method", "handleCallback", "data", query.Data)

	if query.Message == nil || query.Message.Chat == nil {
		return that.answer(query, "")
	}

	if query.Data == occupiedCellData {
		return that.answer(query, MessageCellTaken)
	}

	chatID := query.Message.Chat.ID
	sessionID := pkg.ChatSessionID(chatID, userID(query.From))
	log = log.With("sessionID", sessionID)

	row, col, ok := parseCellData(query.Data)
	if !ok {
		log.Warn("unexpected callback data")
		return that.answer(query, "")
	}

	session, err := that.uGame.GetSession(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.answer(query, MessageGameOver)
	}

	if err != nil {
		log.Error("failed to get session", "error", err)
		return that.answer(query, MessageFailure)
	}

	// any press on a finished board closes the game
	if session.IsFinished() {
		if err = that.uGame.End(ctx, sessionID); err != nil {
			log.Error("failed to end game", "error", err)
		}

		return that.answer(query, MessageGameOver)
	}

	result, err := that.uGame.MakeTurn(ctx, sessionID, row, col)
	if err != nil {
		// a concurrent press may have finished the game
		if errors.Is(err, apperror.ErrGameFinished) {
			return that.answer(query, MessageGameOver)
		}

		if errors.Is(err, apperror.ErrIllegalMove) || errors.Is(err, apperror.ErrOutOfBounds) {
			log.Error("protocol violation", "row", row, "col", col, "error", err)
		} else {
			log.Error("failed to make turn", "error", err)
		}

		return that.answer(query, MessageFailure)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		query.Message.MessageID,
		outcomeMessage(result.Outcome),
		generateKeyboard(result.Board, result.Outcome.IsFinal()),
	)

	if _, err = that.bot.Send(edit); err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	return that.answer(query, "")
}

func (that *Server) answer(query *tgbotapi.CallbackQuery, text string) error {
	if _, err := that.bot.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}

	return nil
}

func (that *Server) sendText(chatID int64, text string) error {
	if _, err := that.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func userID(user *tgbotapi.User) int64 {
	if user == nil {
		return 0
	}

	return user.ID
}
