package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
)

func mustBoard(t *testing.T, rows ...string) Board {
	t.Helper()

	board, err := ParseBoard(rows...)
	require.NoError(t, err)

	return board
}

func TestBoard_Set(t *testing.T) {
	t.Run("Places a mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: a cross is put in the center
		err := board.Set(1, 1, Cross)

		// Then: the cell holds the cross
		require.NoError(t, err)
		cell, err := board.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, Cross, cell)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with a nought in the corner
		board := mustBoard(t, "O..", "...", "...")

		// When: a cross is put on the same cell
		err := board.Set(0, 0, Cross)

		// Then: ErrCellOccupied is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, mustBoard(t, "O..", "...", "..."), board)
	})

	t.Run("Error on out of bounds coordinates", func(t *testing.T) {
		var board Board

		for _, pos := range []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
			// When: a mark is put outside the board
			err := board.Set(pos.Row, pos.Col, Cross)

			// Then: ErrOutOfBounds is returned
			require.ErrorIs(t, err, apperror.ErrOutOfBounds, "position %v", pos)
		}

		_, err := board.Get(3, 3)
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})

	t.Run("Error on setting an empty cell", func(t *testing.T) {
		var board Board

		err := board.Set(0, 0, Empty)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	tests := []struct {
		name     string
		board    []string
		expected []Move
	}{
		{
			name:  "all cells of an empty board",
			board: []string{"...", "...", "..."},
			expected: []Move{
				{0, 0}, {0, 1}, {0, 2},
				{1, 0}, {1, 1}, {1, 2},
				{2, 0}, {2, 1}, {2, 2},
			},
		},
		{
			name:     "two cells left",
			board:    []string{"XOO", "X.X", "OX."},
			expected: []Move{{1, 1}, {2, 2}},
		},
		{
			name:     "none on a full board",
			board:    []string{"XOX", "XOO", "OXX"},
			expected: []Move{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.board...)

			assert.Equal(t, tt.expected, board.EmptyCells())
		})
	}
}

func TestBoard_Reset(t *testing.T) {
	// Given: a partly played board
	board := mustBoard(t, "XO.", ".X.", "..O")

	// When: the board is reset
	board.Reset()

	// Then: every cell is empty
	assert.Equal(t, Board{}, board)
	assert.Len(t, board.EmptyCells(), BoardSize*BoardSize)
}

func TestWinLines(t *testing.T) {
	t.Run("Eight lines on a 3x3 board", func(t *testing.T) {
		lines := WinLines(3)

		require.Len(t, lines, 8)
		assert.Contains(t, lines, []Move{{0, 0}, {1, 1}, {2, 2}})
		assert.Contains(t, lines, []Move{{0, 2}, {1, 1}, {2, 0}})
		assert.Contains(t, lines, []Move{{0, 1}, {1, 1}, {2, 1}})
	})

	t.Run("Rows, columns and two diagonals on larger boards", func(t *testing.T) {
		lines := WinLines(4)

		require.Len(t, lines, 10)
		for _, line := range lines {
			assert.Len(t, line, 4)
		}
	})
}

func TestHasWin(t *testing.T) {
	tests := []struct {
		name   string
		board  []string
		cross  bool
		nought bool
	}{
		{name: "empty board", board: []string{"...", "...", "..."}},
		{name: "single mark", board: []string{"X..", "...", "..."}},
		{name: "no line yet", board: []string{"XO.", "..X", "..."}},
		{name: "cross column", board: []string{"XOO", "X.O", "XX."}, cross: true},
		{name: "nought row", board: []string{"OOO", "XXO", "XX."}, nought: true},
		{name: "cross anti-diagonal", board: []string{"OOX", "XXO", "XX."}, cross: true},
		{name: "nought diagonal", board: []string{"OOX", "XO.", "XXO"}, nought: true},
		{name: "full board without a line", board: []string{"OXX", "XOO", "OXX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.board...)

			assert.Equal(t, tt.cross, HasWin(board, Cross))
			assert.Equal(t, tt.nought, HasWin(board, Nought))
			assert.False(t, HasWin(board, Empty))
		})
	}
}

func TestHasWin_EveryLine(t *testing.T) {
	for _, player := range []Cell{Cross, Nought} {
		for _, line := range WinLines(BoardSize) {
			// Given: a board where player owns exactly one line
			var board Board
			for _, pos := range line {
				require.NoError(t, board.Set(pos.Row, pos.Col, player))
			}

			// Then: the line is a win for that player only
			assert.True(t, HasWin(board, player), "line %v", line)
			assert.False(t, HasWin(board, opponent(player)), "line %v", line)
		}
	}
}

func opponent(player Cell) Cell {
	if player == Cross {
		return Nought
	}
	return Cross
}

func TestIsDraw(t *testing.T) {
	t.Run("Full board without a winner", func(t *testing.T) {
		assert.True(t, IsDraw(mustBoard(t, "OXX", "XOO", "OXX")))
	})

	t.Run("Full board with a winner is not a draw", func(t *testing.T) {
		assert.False(t, IsDraw(mustBoard(t, "XXX", "OOX", "XOO")))
	})

	t.Run("Board with free cells is not a draw", func(t *testing.T) {
		assert.False(t, IsDraw(mustBoard(t, "XOO", "X.X", "OX.")))
	})
}

func TestBoard_JSON(t *testing.T) {
	// Given: a played board
	board := mustBoard(t, "XO.", "...", "..X")

	// When: it goes through JSON
	data, err := json.Marshal(board)
	require.NoError(t, err)

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: cells are written as text and read back unchanged
	assert.JSONEq(t, `[["X","O","."],[".",".","."],[".",".","X"]]`, string(data))
	assert.Equal(t, board, decoded)
	assert.Equal(t, "XO.\n...\n..X", board.String())
}

func TestParseBoard_Errors(t *testing.T) {
	_, err := ParseBoard("...", "...")
	require.ErrorIs(t, err, apperror.ErrOutOfBounds)

	_, err = ParseBoard("...", "..", "...")
	require.ErrorIs(t, err, apperror.ErrOutOfBounds)

	_, err = ParseBoard("...", ".Z.", "...")
	require.ErrorIs(t, err, apperror.ErrInvalidCell)
}
