package fplapi

import (
	"strings"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
)

type bootstrapEnvelope struct {
	Events   []eventPayload   `json:"events"`
	Teams    []teamPayload    `json:"teams"`
	Elements []elementPayload `json:"elements"`
}

type eventPayload struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	DeadlineTime      string `json:"deadline_time"`
	AverageEntryScore int    `json:"average_entry_score"`
	HighestScore      *int   `json:"highest_score"`
	IsPrevious        bool   `json:"is_previous"`
	IsCurrent         bool   `json:"is_current"`
	IsNext            bool   `json:"is_next"`
	Finished          bool   `json:"finished"`
	TopElement        *int   `json:"top_element"`
	MostCaptained     *int   `json:"most_captained"`
}

type teamPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
}

// elementPayload mirrors the upstream player object. Several decimals arrive as strings.
type elementPayload struct {
	ID                            int     `json:"id"`
	FirstName                     string  `json:"first_name"`
	SecondName                    string  `json:"second_name"`
	WebName                       string  `json:"web_name"`
	Team                          int     `json:"team"`
	ElementType                   int     `json:"element_type"`
	NowCost                       int64   `json:"now_cost"`
	Status                        string  `json:"status"`
	ChanceOfPlayingNextRound      *int    `json:"chance_of_playing_next_round"`
	News                          string  `json:"news"`
	TotalPoints                   int     `json:"total_points"`
	EventPoints                   int     `json:"event_points"`
	Minutes                       int     `json:"minutes"`
	GoalsScored                   int     `json:"goals_scored"`
	Assists                       int     `json:"assists"`
	CleanSheets                   int     `json:"clean_sheets"`
	Form                          string  `json:"form"`
	PointsPerGame                 string  `json:"points_per_game"`
	SelectedByPercent             string  `json:"selected_by_percent"`
	ExpectedGoalInvolvementsPer90 float64 `json:"expected_goal_involvements_per_90"`
	ExpectedGoalsConcededPer90    float64 `json:"expected_goals_conceded_per_90"`
	TransfersInEvent              int64   `json:"transfers_in_event"`
	TransfersOutEvent             int64   `json:"transfers_out_event"`
}

type fixturePayload struct {
	ID              int     `json:"id"`
	Event           *int    `json:"event"`
	TeamH           int     `json:"team_h"`
	TeamA           int     `json:"team_a"`
	TeamHDifficulty int     `json:"team_h_difficulty"`
	TeamADifficulty int     `json:"team_a_difficulty"`
	KickoffTime     *string `json:"kickoff_time"`
	Started         *bool   `json:"started"`
	Finished        bool    `json:"finished"`
	TeamHScore      *int    `json:"team_h_score"`
	TeamAScore      *int    `json:"team_a_score"`
}

type liveEnvelope struct {
	Elements []liveElementPayload `json:"elements"`
}

type liveElementPayload struct {
	ID    int `json:"id"`
	Stats struct {
		Minutes     int `json:"minutes"`
		TotalPoints int `json:"total_points"`
		GoalsScored int `json:"goals_scored"`
		Assists     int `json:"assists"`
		CleanSheets int `json:"clean_sheets"`
		Bonus       int `json:"bonus"`
		BPS         int `json:"bps"`
	} `json:"stats"`
}

type picksEnvelope struct {
	ActiveChip   *string `json:"active_chip"`
	EntryHistory struct {
		Event          int   `json:"event"`
		Points         int   `json:"points"`
		Bank           int64 `json:"bank"`
		Value          int64 `json:"value"`
		EventTransfers int   `json:"event_transfers"`
		PointsOnBench  int   `json:"points_on_bench"`
	} `json:"entry_history"`
	Picks []pickPayload `json:"picks"`
}

type pickPayload struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

func (e elementPayload) toRecord() player.Record {
	return player.Record{
		ID:                            e.ID,
		FirstName:                     e.FirstName,
		SecondName:                    e.SecondName,
		WebName:                       e.WebName,
		TeamID:                        e.Team,
		ElementType:                   e.ElementType,
		NowCost:                       e.NowCost,
		Status:                        e.Status,
		ChanceOfPlayingNextRound:      e.ChanceOfPlayingNextRound,
		News:                          e.News,
		TotalPoints:                   e.TotalPoints,
		EventPoints:                   e.EventPoints,
		Minutes:                       e.Minutes,
		GoalsScored:                   e.GoalsScored,
		Assists:                       e.Assists,
		CleanSheets:                   e.CleanSheets,
		Form:                          e.Form,
		PointsPerGame:                 e.PointsPerGame,
		SelectedByPercent:             e.SelectedByPercent,
		ExpectedGoalInvolvementsPer90: e.ExpectedGoalInvolvementsPer90,
		ExpectedGoalsConcededPer90:    e.ExpectedGoalsConcededPer90,
		TransfersInEvent:              e.TransfersInEvent,
		TransfersOutEvent:             e.TransfersOutEvent,
	}
}

func (t teamPayload) toDomain() team.Team {
	return team.Team{
		ID:        t.ID,
		Name:      strings.TrimSpace(t.Name),
		ShortName: strings.TrimSpace(t.ShortName),
		Strength:  t.Strength,
	}
}

func (e eventPayload) toDomain() gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:              e.ID,
		Name:            strings.TrimSpace(e.Name),
		Deadline:        parseTime(e.DeadlineTime),
		AverageScore:    e.AverageEntryScore,
		HighestScore:    derefInt(e.HighestScore),
		IsPrevious:      e.IsPrevious,
		IsCurrent:       e.IsCurrent,
		IsNext:          e.IsNext,
		Finished:        e.Finished,
		TopElementID:    derefInt(e.TopElement),
		MostCaptainedID: derefInt(e.MostCaptained),
	}
}

func (f fixturePayload) toDomain() fixture.Fixture {
	out := fixture.Fixture{
		ID:             f.ID,
		Gameweek:       derefInt(f.Event),
		HomeTeamID:     f.TeamH,
		AwayTeamID:     f.TeamA,
		HomeDifficulty: f.TeamHDifficulty,
		AwayDifficulty: f.TeamADifficulty,
		Finished:       f.Finished,
		HomeScore:      f.TeamHScore,
		AwayScore:      f.TeamAScore,
	}
	if f.KickoffTime != nil {
		out.KickoffAt = parseTime(*f.KickoffTime)
	}
	if f.Started != nil {
		out.Started = *f.Started
	}
	return out
}

func (l liveElementPayload) toDomain(gw int) live.ElementStats {
	return live.ElementStats{
		PlayerID:    l.ID,
		Gameweek:    gw,
		Minutes:     l.Stats.Minutes,
		TotalPoints: l.Stats.TotalPoints,
		Goals:       l.Stats.GoalsScored,
		Assists:     l.Stats.Assists,
		CleanSheets: l.Stats.CleanSheets,
		Bonus:       l.Stats.Bonus,
		BPS:         l.Stats.BPS,
	}
}

func (p picksEnvelope) toDomain(entryID, gw int) squad.Entry {
	picks := make([]squad.Pick, 0, len(p.Picks))
	for _, item := range p.Picks {
		picks = append(picks, squad.Pick{
			PlayerID:      item.Element,
			Slot:          item.Position,
			Multiplier:    item.Multiplier,
			IsCaptain:     item.IsCaptain,
			IsViceCaptain: item.IsViceCaptain,
		})
	}

	event := p.EntryHistory.Event
	if event <= 0 {
		event = gw
	}
	chip := ""
	if p.ActiveChip != nil {
		chip = *p.ActiveChip
	}

	return squad.Entry{
		ID:             entryID,
		Gameweek:       event,
		Picks:          picks,
		Bank:           p.EntryHistory.Bank,
		Value:          p.EntryHistory.Value,
		ActiveChip:     chip,
		EventTransfers: p.EntryHistory.EventTransfers,
		PointsOnBench:  p.EntryHistory.PointsOnBench,
	}
}

func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
