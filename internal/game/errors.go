package game

import "errors"

// ErrIllegalAction is matched (errors.Is) by every rule violation the
// state machine reports. The request layer maps it to 400.
var ErrIllegalAction = errors.New("illegal action")

var (
	ErrNoRollsRemaining = illegalAction("no rolls remaining")
	ErrMustRollFirst    = illegalAction("must roll dice before scoring")
	ErrCategoryScored   = illegalAction("category already scored")
	ErrGameOver         = illegalAction("game is over")
)

// ErrNoPlayers is returned by New when no player names are given.
var ErrNoPlayers = errors.New("at least one player is required")

type illegalAction string

func (e illegalAction) Error() string { return string(e) }

func (e illegalAction) Is(target error) bool { return target == ErrIllegalAction }
