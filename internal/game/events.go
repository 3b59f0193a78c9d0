package game

import (
	"sync"
	"time"

	"github.com/lantos1618/pocketaces/internal/deck"
)

// EventType identifies a game domain event
type EventType string

const (
	EventTypePhaseChanged  EventType = "phase_changed"
	EventTypeActionApplied EventType = "action_applied"
	EventTypeGameEnded     EventType = "game_ended"
)

func (et EventType) String() string {
	return string(et)
}

// Event is a plain data record emitted by the core for external consumers
// (broadcasters, agent drivers). The core knows nothing about transport or
// serialization.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// PhaseChangedEvent is published when a hand enters a new phase
type PhaseChangedEvent struct {
	GameID    string
	Phase     Phase
	Community []deck.Card
	timestamp time.Time
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }
func (e PhaseChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseChangedEvent creates a new phase change event
func NewPhaseChangedEvent(gameID string, phase Phase, community []deck.Card, now time.Time) PhaseChangedEvent {
	cards := make([]deck.Card, len(community))
	copy(cards, community)
	return PhaseChangedEvent{
		GameID:    gameID,
		Phase:     phase,
		Community: cards,
		timestamp: now,
	}
}

// ActionAppliedEvent is published after a player action is applied
type ActionAppliedEvent struct {
	GameID    string
	PlayerID  string
	Action    Action
	Amount    int
	timestamp time.Time
}

func (e ActionAppliedEvent) EventType() EventType { return EventTypeActionApplied }
func (e ActionAppliedEvent) Timestamp() time.Time { return e.timestamp }

// NewActionAppliedEvent creates a new action applied event
func NewActionAppliedEvent(gameID, playerID string, action Action, amount int, now time.Time) ActionAppliedEvent {
	return ActionAppliedEvent{
		GameID:    gameID,
		PlayerID:  playerID,
		Action:    action,
		Amount:    amount,
		timestamp: now,
	}
}

// GameEndedEvent is published when a hand's pot has been distributed
type GameEndedEvent struct {
	GameID    string
	Winners   []string
	Pot       int
	timestamp time.Time
}

func (e GameEndedEvent) EventType() EventType { return EventTypeGameEnded }
func (e GameEndedEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndedEvent creates a new game ended event
func NewGameEndedEvent(gameID string, winners []string, pot int, now time.Time) GameEndedEvent {
	return GameEndedEvent{
		GameID:    gameID,
		Winners:   append([]string(nil), winners...),
		Pot:       pot,
		timestamp: now,
	}
}

// Subscriber receives game events
type Subscriber interface {
	OnEvent(event Event)
}

// Bus is a simple in-memory event bus. Publishing happens while game locks
// are held, and distinct games publish concurrently, so the subscriber list
// is guarded.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a subscriber to receive events
func (b *Bus) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, sub)
}

// Unsubscribe removes a subscriber
func (b *Bus) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s == sub {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
