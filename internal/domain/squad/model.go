package squad

import (
	"errors"
	"fmt"
)

const (
	SquadSize    = 15
	StarterSlots = 11
)

var (
	ErrInvalidPickCount = errors.New("squad must contain exactly 15 picks")
	ErrInvalidSlot      = errors.New("pick slot must be between 1 and 15")
	ErrDuplicateSlot    = errors.New("duplicate pick slot")
	ErrDuplicatePlayer  = errors.New("duplicate player in squad")
	ErrCaptainCount     = errors.New("squad must have exactly one captain")
)

// Pick places a player into a lineup slot. Slots 1-11 start, 12-15 are the bench in order.
type Pick struct {
	PlayerID      int
	Slot          int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

func (p Pick) IsBench() bool {
	return p.Slot > StarterSlots
}

// Entry is a manager's squad for one gameweek. Bank and Value use tenths of a million.
type Entry struct {
	ID             int
	Gameweek       int
	Picks          []Pick
	Bank           int64
	Value          int64
	ActiveChip     string
	EventTransfers int
	PointsOnBench  int
}

// PlayerIDs returns the squad's player ids in pick order.
func (e Entry) PlayerIDs() []int {
	out := make([]int, 0, len(e.Picks))
	for _, pick := range e.Picks {
		out = append(out, pick.PlayerID)
	}
	return out
}

func (e Entry) Owns(playerID int) bool {
	for _, pick := range e.Picks {
		if pick.PlayerID == playerID {
			return true
		}
	}
	return false
}

func ValidatePicks(picks []Pick) error {
	if len(picks) != SquadSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPickCount, len(picks))
	}

	slots := make(map[int]struct{}, len(picks))
	players := make(map[int]struct{}, len(picks))
	captains := 0
	for _, pick := range picks {
		if pick.Slot < 1 || pick.Slot > SquadSize {
			return fmt.Errorf("%w: slot=%d", ErrInvalidSlot, pick.Slot)
		}
		if _, exists := slots[pick.Slot]; exists {
			return fmt.Errorf("%w: slot=%d", ErrDuplicateSlot, pick.Slot)
		}
		slots[pick.Slot] = struct{}{}

		if _, exists := players[pick.PlayerID]; exists {
			return fmt.Errorf("%w: player=%d", ErrDuplicatePlayer, pick.PlayerID)
		}
		players[pick.PlayerID] = struct{}{}

		if pick.IsCaptain {
			captains++
		}
	}
	if captains != 1 {
		return fmt.Errorf("%w: got %d", ErrCaptainCount, captains)
	}

	return nil
}
