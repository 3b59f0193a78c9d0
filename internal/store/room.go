package store

import (
	"time"

	"github.com/thoas/go-funk"

	"github.com/lantos1618/pocketaces/internal/config"
	"github.com/lantos1618/pocketaces/internal/game"
)

// Room is a persistent table that players join and leave between hands.
// Player chips in the roster are the durable bankrolls; a hand works on
// copies and the results are written back when it finishes.
type Room struct {
	ID          string
	Name        string
	Stakes      config.Table
	Policy      config.Room
	Players     []*game.Player
	Dealer      int // roster index of the dealer button for the next hand
	CurrentGame string
	GamesPlayed int
	CreatedAt   time.Time
}

// CanStart reports whether the room satisfies the start policy: enough
// funded seats overall, and at least the configured minimum of human and
// agent controlled seats among them.
func (r *Room) CanStart() bool {
	funded := funk.Filter(r.Players, func(p *game.Player) bool {
		return p.Chips > 0
	}).([]*game.Player)
	if len(funded) < r.Stakes.MinPlayers {
		return false
	}

	humans := 0
	agents := 0
	for _, p := range funded {
		if p.Human {
			humans++
		} else {
			agents++
		}
	}
	return humans >= r.Policy.MinHumans && agents >= r.Policy.MinAgents
}

// player returns the roster entry with the given id
func (r *Room) player(id string) (*game.Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// snapshot returns a deep copy safe to hand to callers
func (r *Room) snapshot() *Room {
	cp := *r
	cp.Players = make([]*game.Player, len(r.Players))
	for i, p := range r.Players {
		pc := *p
		pc.HoleCards = nil
		cp.Players[i] = &pc
	}
	return &cp
}
