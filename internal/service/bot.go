package service

import (
	"math/rand/v2"
	"sync"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

type BotService interface {
	ChooseMove(board entity.Board) (entity.Move, error)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService returns a bot picking a uniformly random free cell.
// A nil source uses the runtime generator, so games are not reproducible.
func NewBotService(src rand.Source) BotService {
	if src == nil {
		return &botService{}
	}

	return &botService{rnd: rand.New(src)} //nolint: gosec // it's ok
}

func (that *botService) ChooseMove(board entity.Board) (entity.Move, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Move{}, apperror.ErrNoMovesAvailable
	}

	return availableCells[that.intN(len(availableCells))], nil
}

func (that *botService) intN(n int) int {
	if that.rnd == nil {
		return rand.IntN(n) //nolint: gosec // it's ok
	}

	// rand.Rand is not safe for concurrent use
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.IntN(n)
}
