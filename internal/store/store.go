package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lantos1618/pocketaces/internal/config"
	"github.com/lantos1618/pocketaces/internal/game"
	"github.com/lantos1618/pocketaces/internal/randutil"
)

// maxResults bounds the in-memory result history; the oldest hands fall off
const maxResults = 1024

// entry is a live hand plus the bookkeeping needed to produce its result
type entry struct {
	state     *game.State
	starting  map[string]int // chips per player at hand start, blinds included
	createdAt time.Time
}

// Store owns every room and live hand. All mutation of a hand happens under
// that hand's mutex, so two goroutines submitting actions for the same game
// serialize; distinct games proceed concurrently. Reads hand out deep copies,
// never live state.
type Store struct {
	logger *log.Logger
	clock  quartz.Clock
	bus    *game.Bus
	seed   int64

	mu        sync.Mutex // guards the maps and results below
	rooms     map[string]*Room
	roomLocks map[string]*sync.Mutex
	games     map[string]*entry
	gameLocks map[string]*sync.Mutex
	results   []GameResult
	created   int64
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock, letting tests inject a mock
func WithClock(c quartz.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithSeed sets the base seed for per-game deck shuffles
func WithSeed(seed int64) Option {
	return func(s *Store) { s.seed = seed }
}

// New creates an empty store
func New(logger *log.Logger, opts ...Option) *Store {
	s := &Store{
		logger:    logger.With("component", "store"),
		clock:     quartz.NewReal(),
		bus:       game.NewBus(),
		seed:      time.Now().UnixNano(),
		rooms:     make(map[string]*Room),
		roomLocks: make(map[string]*sync.Mutex),
		games:     make(map[string]*entry),
		gameLocks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bus returns the event bus for subscribing to game events
func (s *Store) Bus() *game.Bus {
	return s.bus
}

// CreateRoom creates a room with the given stakes and start policy
func (s *Store) CreateRoom(name string, stakes config.Table, policy config.Room) *Room {
	room := &Room{
		ID:        uuid.New().String(),
		Name:      name,
		Stakes:    stakes,
		Policy:    policy,
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	s.rooms[room.ID] = room
	s.roomLocks[room.ID] = &sync.Mutex{}
	s.mu.Unlock()

	s.logger.Info("room created", "room", room.ID, "name", name,
		"blinds", fmt.Sprintf("%d/%d", stakes.SmallBlind, stakes.BigBlind))
	return room.snapshot()
}

// JoinRoom seats a player in a room. A zero buy-in defaults to the table's
// starting stack; an empty id gets a generated one. Returns the updated room.
func (s *Store) JoinRoom(roomID string, p game.Player) (*Room, error) {
	lk := s.roomLock(roomID)
	if lk == nil {
		return nil, game.ErrRoomNotFound
	}
	lk.Lock()
	defer lk.Unlock()

	room := s.room(roomID)
	if len(room.Players) >= room.Stakes.MaxPlayers {
		return nil, game.ErrRoomFull
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, ok := room.player(p.ID); ok {
		return nil, fmt.Errorf("player %s already seated in room %s", p.ID, roomID)
	}
	if p.Chips == 0 {
		p.Chips = room.Stakes.StartingChips
	}
	p.Status = game.StatusActive
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	room.Players = append(room.Players, &p)

	s.logger.Info("player joined", "room", roomID, "player", p.ID,
		"name", p.Name, "chips", p.Chips, "human", p.Human)
	return room.snapshot(), nil
}

// LeaveRoom removes a player from a room's roster. A hand already in
// progress plays on with its own copy of the player.
func (s *Store) LeaveRoom(roomID, playerID string) error {
	lk := s.roomLock(roomID)
	if lk == nil {
		return game.ErrRoomNotFound
	}
	lk.Lock()
	defer lk.Unlock()

	room := s.room(roomID)
	for i, p := range room.Players {
		if p.ID != playerID {
			continue
		}
		room.Players = append(room.Players[:i], room.Players[i+1:]...)
		if i < room.Dealer {
			room.Dealer--
		}
		if len(room.Players) > 0 {
			room.Dealer %= len(room.Players)
		} else {
			room.Dealer = 0
		}
		s.logger.Info("player left", "room", roomID, "player", playerID)
		return nil
	}
	return fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
}

// Room returns a snapshot of a room
func (s *Store) Room(roomID string) (*Room, error) {
	lk := s.roomLock(roomID)
	if lk == nil {
		return nil, game.ErrRoomNotFound
	}
	lk.Lock()
	defer lk.Unlock()
	return s.room(roomID).snapshot(), nil
}

// Rooms returns snapshots of all rooms
func (s *Store) Rooms() []*Room {
	s.mu.Lock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	rooms := make([]*Room, 0, len(ids))
	for _, id := range ids {
		if r, err := s.Room(id); err == nil {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// CreateGame starts a new hand in a room. Every funded roster player is
// dealt in with a copy of their bankroll; the roster itself is untouched
// until the hand finishes. The returned state is a snapshot.
func (s *Store) CreateGame(roomID string) (*game.State, error) {
	snap, err := s.startGame(roomID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(game.NewPhaseChangedEvent(snap.ID, snap.Phase, snap.Community, s.clock.Now()))

	// Blinds can put everyone all-in, running the hand out before any
	// action is possible
	if snap.Phase == game.Finished {
		s.maybeFinish(snap.ID)
	}
	return snap, nil
}

func (s *Store) startGame(roomID string) (*game.State, error) {
	lk := s.roomLock(roomID)
	if lk == nil {
		return nil, game.ErrRoomNotFound
	}
	lk.Lock()
	defer lk.Unlock()

	room := s.room(roomID)
	if room.CurrentGame != "" {
		return nil, fmt.Errorf("%w: hand %s in progress", game.ErrCannotStart, room.CurrentGame)
	}
	if !room.CanStart() {
		return nil, fmt.Errorf("%w: start policy not met", game.ErrCannotStart)
	}

	var players []*game.Player
	starting := make(map[string]int)
	for _, p := range room.Players {
		if p.Chips <= 0 {
			continue
		}
		players = append(players, &game.Player{
			ID:      p.ID,
			Name:    p.Name,
			Chips:   p.Chips,
			Human:   p.Human,
			AgentID: p.AgentID,
		})
		starting[p.ID] = p.Chips
	}

	id := uuid.New().String()

	s.mu.Lock()
	s.created++
	rng := randutil.New(s.seed + s.created)
	s.mu.Unlock()

	st := game.NewState(id, roomID, players,
		dealerFor(room.Players, room.Dealer, players),
		room.Stakes.SmallBlind, room.Stakes.BigBlind, rng)
	st.CreatedAt = s.clock.Now()

	if err := st.StartHand(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.games[id] = &entry{state: st, starting: starting, createdAt: st.CreatedAt}
	s.gameLocks[id] = &sync.Mutex{}
	s.mu.Unlock()

	room.CurrentGame = id
	room.GamesPlayed++

	s.logger.Info("hand started", "room", roomID, "game", id,
		"players", len(players), "dealer", st.Dealer)
	return st.Clone(), nil
}

// dealerFor maps the roster's dealer position onto the dealt-in players:
// the first funded player at or after the roster button holds it this hand.
func dealerFor(roster []*game.Player, button int, players []*game.Player) int {
	n := len(roster)
	if n == 0 {
		return 0
	}
	for off := 0; off < n; off++ {
		cand := roster[(button+off)%n]
		for i, p := range players {
			if p.ID == cand.ID {
				return i
			}
		}
	}
	return 0
}

// Game returns a snapshot of a live hand
func (s *Store) Game(gameID string) (*game.State, error) {
	lk := s.gameLockFor(gameID)
	if lk == nil {
		return nil, game.ErrGameNotFound
	}
	lk.Lock()
	defer lk.Unlock()

	e := s.entryFor(gameID)
	if e == nil {
		return nil, game.ErrGameNotFound
	}
	return e.state.Clone(), nil
}

// ApplyAction submits one player action to a live hand. Validation failures
// leave the hand untouched. Total chips are checked before and after the
// mutation; any mismatch is a consistency violation and aborts the hand.
// When the action finishes the hand, the result is recorded and the room's
// roster is settled before returning.
func (s *Store) ApplyAction(gameID, playerID string, action game.Action, amount int) (*game.State, error) {
	lk := s.gameLockFor(gameID)
	if lk == nil {
		return nil, game.ErrGameNotFound
	}
	lk.Lock()
	defer lk.Unlock()

	e := s.entryFor(gameID)
	if e == nil {
		return nil, game.ErrGameNotFound
	}

	st := e.state
	before := st.TotalChips()
	phaseBefore := st.Phase
	now := s.clock.Now()

	if err := st.ApplyAction(playerID, action, amount, now); err != nil {
		if game.IsConsistency(err) {
			s.abort(gameID, err)
		}
		return nil, err
	}

	if after := st.TotalChips(); after != before {
		err := game.Consistencyf("chip total changed from %d to %d applying %s by %s",
			before, after, action, playerID)
		s.abort(gameID, err)
		return nil, err
	}

	rec := st.History[len(st.History)-1]
	s.bus.Publish(game.NewActionAppliedEvent(gameID, rec.PlayerID, rec.Action, rec.Amount, now))
	if st.Phase != phaseBefore {
		s.bus.Publish(game.NewPhaseChangedEvent(gameID, st.Phase, st.Community, now))
	}

	snap := st.Clone()
	if st.Phase == game.Finished {
		s.finishLocked(gameID, e)
	}
	return snap, nil
}

// maybeFinish settles a hand that reached Finished outside ApplyAction
func (s *Store) maybeFinish(gameID string) {
	lk := s.gameLockFor(gameID)
	if lk == nil {
		return
	}
	lk.Lock()
	defer lk.Unlock()

	e := s.entryFor(gameID)
	if e == nil || e.state.Phase != game.Finished {
		return
	}
	s.finishLocked(gameID, e)
}

// finishLocked builds the hand's result, settles chips back into the room
// roster, retires the hand and publishes GameEnded. The game's lock must be
// held.
func (s *Store) finishLocked(gameID string, e *entry) GameResult {
	st := e.state
	now := s.clock.Now()

	actions := make(map[string]int)
	for _, rec := range st.History {
		actions[rec.PlayerID]++
	}

	result := GameResult{
		GameID:   gameID,
		RoomID:   st.RoomID,
		Winners:  append([]string(nil), st.Winners...),
		Players:  make(map[string]PlayerResult, len(st.Players)),
		Duration: now.Sub(e.createdAt),
		EndedAt:  now,
	}
	if st.WinningHand != nil {
		wh := *st.WinningHand
		wh.Tiebreaks = append([]int(nil), st.WinningHand.Tiebreaks...)
		result.WinningHand = &wh
	}
	for _, amount := range st.Payouts {
		result.Pot += amount
	}
	for _, p := range st.Players {
		result.Players[p.ID] = PlayerResult{
			Profit:     p.Chips - e.starting[p.ID],
			FinalChips: p.Chips,
			Actions:    actions[p.ID],
		}
	}

	s.settleRoom(st)

	s.mu.Lock()
	s.results = append(s.results, result)
	if len(s.results) > maxResults {
		s.results = append([]GameResult(nil), s.results[len(s.results)-maxResults:]...)
	}
	delete(s.games, gameID)
	delete(s.gameLocks, gameID)
	s.mu.Unlock()

	s.bus.Publish(game.NewGameEndedEvent(gameID, result.Winners, result.Pot, now))
	s.logger.Info("hand finished", "game", gameID,
		"winners", result.Winners, "pot", result.Pot, "duration", result.Duration)
	return result
}

// settleRoom writes final stacks back to the roster and frees the room for
// the next hand
func (s *Store) settleRoom(st *game.State) {
	lk := s.roomLock(st.RoomID)
	if lk == nil {
		return
	}
	lk.Lock()
	defer lk.Unlock()

	room := s.room(st.RoomID)
	for _, p := range st.Players {
		if rp, ok := room.player(p.ID); ok {
			rp.Chips = p.Chips
		}
	}
	room.CurrentGame = ""
	if len(room.Players) > 0 {
		room.Dealer = (room.Dealer + 1) % len(room.Players)
	}
}

// abort retires a hand after a consistency violation. No chips flow back to
// the roster; the defect is logged and the hand's money trail is preserved
// in the log line.
func (s *Store) abort(gameID string, cause error) {
	s.mu.Lock()
	e := s.games[gameID]
	delete(s.games, gameID)
	delete(s.gameLocks, gameID)
	s.mu.Unlock()

	if e == nil {
		return
	}
	s.logger.Error("hand aborted", "game", gameID, "err", cause,
		"pot", e.state.Pot, "phase", e.state.Phase)

	lk := s.roomLock(e.state.RoomID)
	if lk == nil {
		return
	}
	lk.Lock()
	defer lk.Unlock()
	s.room(e.state.RoomID).CurrentGame = ""
}

// Results returns the results of all finished hands, oldest first
func (s *Store) Results() []GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GameResult(nil), s.results...)
}

// ResultFor returns the result of a finished hand
func (s *Store) ResultFor(gameID string) (GameResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.results {
		if r.GameID == gameID {
			return r, true
		}
	}
	return GameResult{}, false
}

func (s *Store) roomLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomLocks[id]
}

func (s *Store) room(id string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[id]
}

func (s *Store) gameLockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameLocks[id]
}

func (s *Store) entryFor(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[id]
}
