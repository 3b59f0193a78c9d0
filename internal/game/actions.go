package game

import "fmt"

// Phase represents the phase of a poker hand. Phases advance linearly from
// Waiting through Finished; there are no cycles back.
type Phase int

const (
	Waiting Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	Finished
)

func (p Phase) String() string {
	return [...]string{"waiting", "pre_flop", "flop", "turn", "river", "showdown", "finished"}[p]
}

// Status represents a player's status within a hand
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
	StatusSittingOut
)

func (s Status) String() string {
	return [...]string{"active", "folded", "all_in", "sitting_out"}[s]
}

// Action represents a player action. It is a closed set: every switch over
// Action handles all five kinds explicitly.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return [...]string{"fold", "check", "call", "raise", "all_in"}[a]
}
