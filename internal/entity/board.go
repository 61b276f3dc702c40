package entity

import (
	"fmt"
	"strings"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
)

// BoardSize is the side length of the board.
const BoardSize = 3

type Cell uint8

const (
	Empty Cell = iota
	Cross
	Nought
)

func (that Cell) String() string {
	switch that {
	case Cross:
		return "X"
	case Nought:
		return "O"
	default:
		return "."
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*that = cell
	return nil
}

func ParseCell(s string) (Cell, error) {
	switch s {
	case ".", "":
		return Empty, nil
	case "X":
		return Cross, nil
	case "O":
		return Nought, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, s)
	}
}

// Move is a (row, col) position on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a 3x3 grid indexed by row then column.
type Board [BoardSize][BoardSize]Cell

// ParseBoard builds a board from rows like "X.O".
func ParseBoard(rows ...string) (Board, error) {
	var board Board

	if len(rows) != BoardSize {
		return board, fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrOutOfBounds, BoardSize, len(rows))
	}

	for r, row := range rows {
		if len(row) != BoardSize {
			return board, fmt.Errorf("%w: row %d has %d cells", apperror.ErrOutOfBounds, r, len(row))
		}

		for c := range row {
			cell, err := ParseCell(row[c : c+1])
			if err != nil {
				return board, fmt.Errorf("row %d: %w", r, err)
			}
			board[r][c] = cell
		}
	}

	return board, nil
}

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that *Board) Get(row, col int) (Cell, error) {
	if !inBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	return that[row][col], nil
}

// Set places a mark. Cells are cleared only by Reset.
func (that *Board) Set(row, col int, cell Cell) error {
	if !inBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	if cell != Cross && cell != Nought {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidCell, cell)
	}

	if that[row][col] != Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = cell

	return nil
}

// EmptyCells returns the free positions in row-major order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)
	for r := range that {
		for c := range that[r] {
			if that[r][c] == Empty {
				cells = append(cells, Move{Row: r, Col: c})
			}
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	return len(that.EmptyCells()) == 0
}

func (that *Board) Reset() {
	*that = Board{}
}

func (that Board) String() string {
	var sb strings.Builder
	for r := range that {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range that[r] {
			sb.WriteString(that[r][c].String())
		}
	}

	return sb.String()
}

// WinLines returns every winning line of an n x n board: n rows, n columns and both diagonals.
func WinLines(n int) [][]Move {
	lines := make([][]Move, 0, 2*n+2)

	for i := 0; i < n; i++ {
		row := make([]Move, 0, n)
		col := make([]Move, 0, n)
		for j := 0; j < n; j++ {
			row = append(row, Move{Row: i, Col: j})
			col = append(col, Move{Row: j, Col: i})
		}
		lines = append(lines, row, col)
	}

	mainDiag := make([]Move, 0, n)
	antiDiag := make([]Move, 0, n)
	for i := 0; i < n; i++ {
		mainDiag = append(mainDiag, Move{Row: i, Col: i})
		antiDiag = append(antiDiag, Move{Row: i, Col: n - 1 - i})
	}

	return append(lines, mainDiag, antiDiag)
}

var winLines = WinLines(BoardSize)

// HasWin reports whether player owns a complete line.
func HasWin(board Board, player Cell) bool {
	if player == Empty {
		return false
	}

	for _, line := range winLines {
		complete := true
		for _, pos := range line {
			if board[pos.Row][pos.Col] != player {
				complete = false
				break
			}
		}

		if complete {
			return true
		}
	}

	return false
}

// IsDraw is true for a full board without a winner.
func IsDraw(board Board) bool {
	return board.IsFull() && !HasWin(board, Cross) && !HasWin(board, Nought)
}
