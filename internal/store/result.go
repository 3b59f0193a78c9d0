package store

import (
	"time"

	"github.com/lantos1618/pocketaces/internal/evaluator"
)

// PlayerResult is one player's outcome for a finished hand
type PlayerResult struct {
	Profit     int // final chips minus chips at hand start; negative for a loss
	FinalChips int
	Actions    int // actions taken during the hand, blinds excluded
}

// GameResult summarizes a finished hand. It is assembled once when the hand
// finishes and is immutable afterwards.
type GameResult struct {
	GameID      string
	RoomID      string
	Winners     []string
	WinningHand *evaluator.HandRank // nil when the hand ended on folds
	Pot         int                 // total chips distributed
	Players     map[string]PlayerResult
	Duration    time.Duration
	EndedAt     time.Time
}
