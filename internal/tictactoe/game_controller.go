package tictactoe

import (
	"errors"
	"fmt"
	"time"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

type moveSelector interface {
	ChooseMove(board entity.Board) (entity.Move, error)
}

// GameController plays one turn cycle: the human puts a cross, then the bot answers with a nought.
type GameController struct {
	bot moveSelector
}

func NewGameController(bot moveSelector) *GameController {
	return &GameController{bot: bot}
}

// MakeTurn applies the human move at (row, col) and, unless the game is over, the bot reply.
// The session is left untouched when an error is returned.
func (that *GameController) MakeTurn(session *entity.Session, row, col int) (*entity.TurnResult, error) {
	if session.IsFinished() {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrGameFinished)
	}

	if err := validateMove(session.Board, row, col); err != nil {
		return nil, err
	}

	result := &entity.TurnResult{HumanMove: entity.Move{Row: row, Col: col}}

	board := session.Board
	if err := board.Set(row, col, entity.Cross); err != nil {
		return nil, fmt.Errorf("failed to put cross: %w", err)
	}

	outcome, botMove, err := that.resolve(&board)
	if err != nil {
		return nil, err
	}

	session.Board = board
	session.UpdatedAt = time.Now().UTC()
	if outcome.IsFinal() {
		session.Finish(outcome)
	}

	result.Outcome = outcome
	result.BotMove = botMove
	result.Board = board

	return result, nil
}

// resolve decides the outcome after the cross is placed, making the bot move when the game goes on.
func (that *GameController) resolve(board *entity.Board) (entity.Outcome, *entity.Move, error) {
	if entity.HasWin(*board, entity.Cross) {
		return entity.OutcomeCrossWon, nil, nil
	}

	move, err := that.bot.ChooseMove(*board)
	if errors.Is(err, apperror.ErrNoMovesAvailable) {
		return entity.OutcomeDraw, nil, nil
	}

	if err != nil {
		return "", nil, fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = board.Set(move.Row, move.Col, entity.Nought); err != nil {
		return "", nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if entity.HasWin(*board, entity.Nought) {
		return entity.OutcomeNoughtWon, &move, nil
	}

	// the bot took the last free cell
	if entity.IsDraw(*board) {
		return entity.OutcomeDraw, &move, nil
	}

	return entity.OutcomeContinue, &move, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, row, col int) error {
	cell, err := board.Get(row, col)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if cell != entity.Empty {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrCellOccupied)
	}

	return nil
}
