package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

const sessionID = "console"

var errBadInput = errors.New("expected two numbers: row and column")

type uGame interface {
	Start(ctx context.Context, sessionID string) (*entity.Session, error)
	End(ctx context.Context, sessionID string) error
	MakeTurn(ctx context.Context, sessionID string, row, col int) (*entity.TurnResult, error)
}

// Presenter plays the game over a terminal: one "row col" line per move.
type Presenter struct {
	logger *slog.Logger
	uGame  uGame
	in     *bufio.Scanner
	out    *termenv.Output
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Presenter {
	return &Presenter{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		in:     bufio.NewScanner(in),
		out:    termenv.NewOutput(out),
	}
}

// Run plays games until the input ends or the player types "q".
func (that *Presenter) Run(ctx context.Context) error {
	session, err := that.uGame.Start(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.render(session.Board, "X (your) turn! Enter row and column, e.g. \"1 1\". \"q\" quits.")

	for that.in.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(that.in.Text())
		if line == "q" {
			break
		}

		row, col, err := parseMove(line)
		if err != nil {
			that.println(err.Error())
			continue
		}

		result, err := that.uGame.MakeTurn(ctx, sessionID, row, col)
		switch {
		case errors.Is(err, apperror.ErrOutOfBounds), errors.Is(err, apperror.ErrCellOccupied):
			that.println("Choose a free cell between 0 and 2.")
			continue
		case err != nil:
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.render(result.Board, statusLine(result.Outcome))

		if result.Outcome.IsFinal() {
			if session, err = that.uGame.Start(ctx, sessionID); err != nil {
				return fmt.Errorf("failed to restart game: %w", err)
			}

			that.render(session.Board, "New game. X (your) turn!")
		}
	}

	if err = that.uGame.End(ctx, sessionID); err != nil {
		that.logger.Error("failed to end game", "error", err)
	}

	if err = that.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Presenter) render(board entity.Board, status string) {
	var sb strings.Builder

	sb.WriteString("\n    0 1 2\n")
	for r := range board {
		fmt.Fprintf(&sb, "  %d ", r)
		for c, cell := range board[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(that.styleCell(cell))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(status)
	that.println(sb.String())
}

func (that *Presenter) styleCell(cell entity.Cell) string {
	style := that.out.String(cell.String())

	switch cell {
	case entity.Cross:
		return style.Foreground(that.out.Color("2")).Bold().String()
	case entity.Nought:
		return style.Foreground(that.out.Color("1")).Bold().String()
	default:
		return style.Faint().String()
	}
}

func (that *Presenter) println(s string) {
	if _, err := fmt.Fprintln(that.out, s); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func statusLine(outcome entity.Outcome) string {
	switch outcome {
	case entity.OutcomeCrossWon:
		return "X (you) won! The game is over."
	case entity.OutcomeNoughtWon:
		return "O (bot) won! The game is over."
	case entity.OutcomeDraw:
		return "No one won! The game is over."
	default:
		return "X (your) turn!"
	}
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errBadInput
	}

	return row, col, nil
}
