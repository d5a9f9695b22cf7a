package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown player position")

// Position is the closed set of squad positions. Values match the upstream element_type ids.
type Position int

const (
	PositionGoalkeeper Position = 1
	PositionDefender   Position = 2
	PositionMidfielder Position = 3
	PositionForward    Position = 4
)

var AllPositions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

func (p Position) Code() string {
	switch p {
	case PositionGoalkeeper:
		return "GKP"
	case PositionDefender:
		return "DEF"
	case PositionMidfielder:
		return "MID"
	case PositionForward:
		return "FWD"
	default:
		return ""
	}
}

func (p Position) String() string {
	if code := p.Code(); code != "" {
		return code
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

func (p Position) Valid() bool {
	return p.Code() != ""
}

// IsAttacking reports whether the position is judged on goal involvement rather than goals conceded.
func (p Position) IsAttacking() bool {
	switch p {
	case PositionMidfielder, PositionForward:
		return true
	default:
		return false
	}
}

func ParsePosition(raw string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GKP", "GK":
		return PositionGoalkeeper, nil
	case "DEF":
		return PositionDefender, nil
	case "MID":
		return PositionMidfielder, nil
	case "FWD":
		return PositionForward, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
}

func PositionFromElementType(elementType int) (Position, error) {
	p := Position(elementType)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: element_type=%d", ErrUnknownPosition, elementType)
	}
	return p, nil
}
