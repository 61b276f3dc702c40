package entity

import "time"

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

type Outcome string

const (
	OutcomeContinue  Outcome = "continue"
	OutcomeCrossWon  Outcome = "cross_won"
	OutcomeNoughtWon Outcome = "nought_won"
	OutcomeDraw      Outcome = "draw"
)

// IsFinal reports whether the outcome ends the game.
func (that Outcome) IsFinal() bool {
	return that == OutcomeCrossWon || that == OutcomeNoughtWon || that == OutcomeDraw
}

// Session is one game tied to a single conversation.
type Session struct {
	ID        string    `json:"id"`
	Board     Board     `json:"board"`
	Status    string    `json:"status"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string) *Session {
	now := time.Now().UTC()

	return &Session{
		ID:        id,
		Status:    StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset clears the board and puts the session back in progress.
func (that *Session) Reset() {
	that.Board.Reset()
	that.Status = StatusInProgress
	that.Outcome = ""
	that.UpdatedAt = time.Now().UTC()
}

func (that *Session) Finish(outcome Outcome) {
	that.Status = StatusFinished
	that.Outcome = outcome
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsInProgress() bool {
	return that.Status == StatusInProgress
}

// TurnResult describes one turn cycle for presenters.
type TurnResult struct {
	Outcome   Outcome `json:"outcome"`
	HumanMove Move    `json:"human_move"`
	BotMove   *Move   `json:"bot_move,omitempty"`
	Board     Board   `json:"board"`
}
