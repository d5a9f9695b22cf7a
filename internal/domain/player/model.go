package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the upstream availability code.
type Status string

const (
	StatusAvailable   Status = "a"
	StatusDoubtful    Status = "d"
	StatusInjured     Status = "i"
	StatusSuspended   Status = "s"
	StatusUnavailable Status = "u"
	StatusNotInSquad  Status = "n"
)

// Player is an immutable snapshot of one footballer for a given data refresh.
// Price is stored in tenths of a million (95 = 9.5m).
type Player struct {
	ID                            int
	FirstName                     string
	SecondName                    string
	WebName                       string
	TeamID                        int
	Position                      Position
	Price                         int64
	Status                        Status
	ChanceOfPlayingNextRound      *int
	News                          string
	TotalPoints                   int
	EventPoints                   int
	Minutes                       int
	Goals                         int
	Assists                       int
	CleanSheets                   int
	Form                          float64
	PointsPerGame                 float64
	SelectedByPercent             float64
	ExpectedGoalInvolvementsPer90 float64
	ExpectedGoalsConcededPer90    float64
	TransfersInEvent              int64
	TransfersOutEvent             int64
}

// Record is the loosely typed shape supplied by the data layer. Numeric fields that the upstream
// API encodes as strings stay strings here and are resolved by New.
type Record struct {
	ID                            int
	FirstName                     string
	SecondName                    string
	WebName                       string
	TeamID                        int
	ElementType                   int
	NowCost                       int64
	Status                        string
	ChanceOfPlayingNextRound      *int
	News                          string
	TotalPoints                   int
	EventPoints                   int
	Minutes                       int
	GoalsScored                   int
	Assists                       int
	CleanSheets                   int
	Form                          string
	PointsPerGame                 string
	SelectedByPercent             string
	ExpectedGoalInvolvementsPer90 float64
	ExpectedGoalsConcededPer90    float64
	TransfersInEvent              int64
	TransfersOutEvent             int64
}

// New resolves a Record into a Player. Unparsable numbers become zero; only an unusable identity
// (missing id or unknown position) is an error so callers can skip the row.
func New(r Record) (Player, error) {
	if r.ID <= 0 {
		return Player{}, fmt.Errorf("player id is required")
	}
	position, err := PositionFromElementType(r.ElementType)
	if err != nil {
		return Player{}, fmt.Errorf("player %d: %w", r.ID, err)
	}

	webName := strings.TrimSpace(r.WebName)
	if webName == "" {
		webName = strings.TrimSpace(r.SecondName)
	}

	return Player{
		ID:                            r.ID,
		FirstName:                     strings.TrimSpace(r.FirstName),
		SecondName:                    strings.TrimSpace(r.SecondName),
		WebName:                       webName,
		TeamID:                        r.TeamID,
		Position:                      position,
		Price:                         max(r.NowCost, 0),
		Status:                        normalizeStatus(r.Status),
		ChanceOfPlayingNextRound:      r.ChanceOfPlayingNextRound,
		News:                          strings.TrimSpace(r.News),
		TotalPoints:                   r.TotalPoints,
		EventPoints:                   r.EventPoints,
		Minutes:                       max(r.Minutes, 0),
		Goals:                         r.GoalsScored,
		Assists:                       r.Assists,
		CleanSheets:                   r.CleanSheets,
		Form:                          ParseDecimal(r.Form),
		PointsPerGame:                 ParseDecimal(r.PointsPerGame),
		SelectedByPercent:             ParseDecimal(r.SelectedByPercent),
		ExpectedGoalInvolvementsPer90: finiteOrZero(r.ExpectedGoalInvolvementsPer90),
		ExpectedGoalsConcededPer90:    finiteOrZero(r.ExpectedGoalsConcededPer90),
		TransfersInEvent:              r.TransfersInEvent,
		TransfersOutEvent:             r.TransfersOutEvent,
	}, nil
}

// ParseDecimal parses upstream numeric strings ("5.3", " 12 "); anything unparsable is 0.
func ParseDecimal(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(value)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func normalizeStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusAvailable, "":
		return StatusAvailable
	case StatusDoubtful:
		return StatusDoubtful
	case StatusInjured:
		return StatusInjured
	case StatusSuspended:
		return StatusSuspended
	case StatusUnavailable:
		return StatusUnavailable
	case StatusNotInSquad:
		return StatusNotInSquad
	default:
		return StatusUnavailable
	}
}

func (p Player) DisplayName() string {
	if p.WebName != "" {
		return p.WebName
	}
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}

// NetTransfers is transfers in minus transfers out for the current period.
func (p Player) NetTransfers() int64 {
	return p.TransfersInEvent - p.TransfersOutEvent
}

func (p Player) PriceMillions() decimal.Decimal {
	return decimal.New(p.Price, -1)
}

// PointsPerMillion returns season points divided by price in millions; a zero price yields 0.
func (p Player) PointsPerMillion() float64 {
	if p.Price <= 0 {
		return 0
	}
	return float64(p.TotalPoints) / (float64(p.Price) / 10)
}
