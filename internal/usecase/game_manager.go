package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, id string, fn func(session *entity.Session) error) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	MakeTurn(session *entity.Session, row, col int) (*entity.TurnResult, error)
}

// GameManager owns the session lifecycle on behalf of the presenters.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	controller  gameController
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, controller gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		controller:  controller,
	}
}

// Start creates the session or resets an existing one to an empty board.
func (that *GameManager) Start(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.Update(ctx, sessionID, func(session *entity.Session) error {
		session.Reset()
		return nil
	})

	if errors.Is(err, apperror.ErrSessionNotFound) {
		session = entity.NewSession(sessionID)
		if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		that.logger.Info("session created", "sessionID", sessionID)
		return session, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}

	that.logger.Info("session restarted", "sessionID", sessionID)

	return session, nil
}

// End discards the session. Ending an unknown session is not an error.
func (that *GameManager) End(ctx context.Context, sessionID string) error {
	err := that.sessionRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", sessionID)

	return nil
}

func (that *GameManager) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// MakeTurn plays one turn cycle for the session.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, row, col int) (*entity.TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID)

	var result *entity.TurnResult
	_, err := that.sessionRepo.Update(ctx, sessionID, func(session *entity.Session) error {
		turn, err := that.controller.MakeTurn(session, row, col)
		if err != nil {
			return err //nolint: wrapcheck // wrapped below
		}

		result = turn
		return nil
	})

	if err != nil {
		if errors.Is(err, apperror.ErrIllegalMove) || errors.Is(err, apperror.ErrOutOfBounds) {
			log.Warn("rejected move", "row", row, "col", col, "error", err)
		}

		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	log.Debug("turn played", "row", row, "col", col, "outcome", result.Outcome)

	return result, nil
}
