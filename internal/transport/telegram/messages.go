package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

const (
	MessageCrossWon   = "X (you) won! The game is over."
	MessageNoughtWon  = "O (bot) won! The game is over."
	MessageDraw       = "No one won! The game is over."
	MessageYourTurn   = "X (your) turn! Please, put X to the free place"
	MessageGameOver   = "The game is over. Send /start to play again."
	MessageCellTaken  = "This cell is taken, choose a free one."
	MessageFailure    = "Something went wrong. Send /start to begin a new game."
	MessageHelp       = "Let's play tic-tac-toe! You are X, the bot is O.\nSend /start to begin a new game and press a free cell to move."
	occupiedCellData  = "-"
	commandStart      = "start"
	commandHelp       = "help"
	callbackDataDigit = 2
)

func outcomeMessage(outcome entity.Outcome) string {
	switch outcome {
	case entity.OutcomeCrossWon:
		return MessageCrossWon
	case entity.OutcomeNoughtWon:
		return MessageNoughtWon
	case entity.OutcomeDraw:
		return MessageDraw
	default:
		return MessageYourTurn
	}
}

// generateKeyboard renders the board as a 3x3 inline keyboard. Occupied cells carry no move
// while the game goes on; once it is over every button ends the game.
func generateKeyboard(board entity.Board, finished bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, entity.BoardSize)

	for r := range board {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, entity.BoardSize)
		for c, cell := range board[r] {
			data := cellData(r, c)
			if cell != entity.Empty && !finished {
				data = occupiedCellData
			}

			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(cell.String(), data))
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func cellData(row, col int) string {
	return fmt.Sprintf("%d%d", row, col)
}

// parseCellData reads the "<row><col>" callback payload.
func parseCellData(data string) (int, int, bool) {
	if len(data) != callbackDataDigit {
		return 0, 0, false
	}

	for i := range callbackDataDigit {
		if data[i] < '0' || data[i] > '9' {
			return 0, 0, false
		}
	}

	return int(data[0] - '0'), int(data[1] - '0'), true
}
