package game

import (
	"errors"
	"fmt"
)

// Validation errors: the action is rejected, state is unchanged, and the
// caller may re-prompt the player.
var (
	ErrNotPlayersTurn    = errors.New("not player's turn")
	ErrPlayerCannotAct   = errors.New("player cannot act")
	ErrHandOver          = errors.New("no betting round in progress")
	ErrCannotCheck       = errors.New("cannot check, there is a bet to call")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrRaiseTooSmall     = errors.New("raise below minimum")
	ErrInvalidAction     = errors.New("unknown action kind")
)

// Not-found errors, surfaced directly with no retry semantics.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
)

// Room lifecycle errors
var (
	ErrCannotStart = errors.New("room cannot start a game")
	ErrRoomFull    = errors.New("room is full")
)

// ConsistencyError marks an invariant violation: a deck exhausted mid-hand,
// a chip-conservation mismatch, or similar. It indicates a programming
// defect rather than a user error. The hand must be aborted; the error is
// never masked or downgraded to a validation failure.
type ConsistencyError struct {
	msg string
	err error
}

func (e *ConsistencyError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("consistency violation: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("consistency violation: %s", e.msg)
}

func (e *ConsistencyError) Unwrap() error { return e.err }

// Consistencyf builds a ConsistencyError from a format string
func Consistencyf(format string, args ...any) error {
	return &ConsistencyError{msg: fmt.Sprintf(format, args...)}
}

func consistencyWrap(err error, msg string) error {
	return &ConsistencyError{msg: msg, err: err}
}

// IsConsistency reports whether err is (or wraps) a ConsistencyError,
// distinguishing fatal invariant violations from ordinary validation
// failures.
func IsConsistency(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
