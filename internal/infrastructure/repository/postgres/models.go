package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	qb "github.com/riskibarqy/fpl-insights/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	ShortName string `db:"short_name"`
	Strength  int    `db:"strength"`
}

type playerTableModel struct {
	ID                            int           `db:"id"`
	FirstName                     string        `db:"first_name"`
	SecondName                    string        `db:"second_name"`
	WebName                       string        `db:"web_name"`
	TeamID                        int           `db:"team_id"`
	Position                      int           `db:"position"`
	Price                         int64         `db:"price"`
	Status                        string        `db:"status"`
	ChanceOfPlayingNextRound      sql.NullInt32 `db:"chance_of_playing_next_round"`
	News                          string        `db:"news"`
	TotalPoints                   int           `db:"total_points"`
	EventPoints                   int           `db:"event_points"`
	Minutes                       int           `db:"minutes"`
	Goals                         int           `db:"goals"`
	Assists                       int           `db:"assists"`
	CleanSheets                   int           `db:"clean_sheets"`
	Form                          float64       `db:"form"`
	PointsPerGame                 float64       `db:"points_per_game"`
	SelectedByPercent             float64       `db:"selected_by_percent"`
	ExpectedGoalInvolvementsPer90 float64       `db:"expected_goal_involvements_per_90"`
	ExpectedGoalsConcededPer90    float64       `db:"expected_goals_conceded_per_90"`
	TransfersInEvent              int64         `db:"transfers_in_event"`
	TransfersOutEvent             int64         `db:"transfers_out_event"`
}

type gameweekTableModel struct {
	ID              int          `db:"id"`
	Name            string       `db:"name"`
	Deadline        sql.NullTime `db:"deadline"`
	AverageScore    int          `db:"average_score"`
	HighestScore    int          `db:"highest_score"`
	IsPrevious      bool         `db:"is_previous"`
	IsCurrent       bool         `db:"is_current"`
	IsNext          bool         `db:"is_next"`
	Finished        bool         `db:"finished"`
	TopElementID    int          `db:"top_element_id"`
	MostCaptainedID int          `db:"most_captained_id"`
}

type fixtureTableModel struct {
	ID             int           `db:"id"`
	Gameweek       int           `db:"gameweek"`
	HomeTeamID     int           `db:"home_team_id"`
	AwayTeamID     int           `db:"away_team_id"`
	HomeDifficulty int           `db:"home_difficulty"`
	AwayDifficulty int           `db:"away_difficulty"`
	KickoffAt      sql.NullTime  `db:"kickoff_at"`
	Started        bool          `db:"started"`
	Finished       bool          `db:"finished"`
	HomeScore      sql.NullInt32 `db:"home_score"`
	AwayScore      sql.NullInt32 `db:"away_score"`
}

type liveStatTableModel struct {
	Gameweek    int `db:"gameweek"`
	PlayerID    int `db:"player_id"`
	Minutes     int `db:"minutes"`
	TotalPoints int `db:"total_points"`
	Goals       int `db:"goals"`
	Assists     int `db:"assists"`
	CleanSheets int `db:"clean_sheets"`
	Bonus       int `db:"bonus"`
	BPS         int `db:"bps"`
}

var (
	teamColumns     = qb.Columns(teamTableModel{})
	playerColumns   = qb.Columns(playerTableModel{})
	gameweekColumns = qb.Columns(gameweekTableModel{})
	fixtureColumns  = qb.Columns(fixtureTableModel{})
	liveStatColumns = qb.Columns(liveStatTableModel{})
)

func teamToModel(t team.Team) teamTableModel {
	return teamTableModel{ID: t.ID, Name: t.Name, ShortName: t.ShortName, Strength: t.Strength}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{ID: m.ID, Name: m.Name, ShortName: m.ShortName, Strength: m.Strength}
}

func playerToModel(p player.Player) playerTableModel {
	return playerTableModel{
		ID:                            p.ID,
		FirstName:                     p.FirstName,
		SecondName:                    p.SecondName,
		WebName:                       p.WebName,
		TeamID:                        p.TeamID,
		Position:                      int(p.Position),
		Price:                         p.Price,
		Status:                        string(p.Status),
		ChanceOfPlayingNextRound:      nullInt(p.ChanceOfPlayingNextRound),
		News:                          p.News,
		TotalPoints:                   p.TotalPoints,
		EventPoints:                   p.EventPoints,
		Minutes:                       p.Minutes,
		Goals:                         p.Goals,
		Assists:                       p.Assists,
		CleanSheets:                   p.CleanSheets,
		Form:                          p.Form,
		PointsPerGame:                 p.PointsPerGame,
		SelectedByPercent:             p.SelectedByPercent,
		ExpectedGoalInvolvementsPer90: p.ExpectedGoalInvolvementsPer90,
		ExpectedGoalsConcededPer90:    p.ExpectedGoalsConcededPer90,
		TransfersInEvent:              p.TransfersInEvent,
		TransfersOutEvent:             p.TransfersOutEvent,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:                            m.ID,
		FirstName:                     m.FirstName,
		SecondName:                    m.SecondName,
		WebName:                       m.WebName,
		TeamID:                        m.TeamID,
		Position:                      player.Position(m.Position),
		Price:                         m.Price,
		Status:                        player.Status(m.Status),
		ChanceOfPlayingNextRound:      intPtr(m.ChanceOfPlayingNextRound),
		News:                          m.News,
		TotalPoints:                   m.TotalPoints,
		EventPoints:                   m.EventPoints,
		Minutes:                       m.Minutes,
		Goals:                         m.Goals,
		Assists:                       m.Assists,
		CleanSheets:                   m.CleanSheets,
		Form:                          m.Form,
		PointsPerGame:                 m.PointsPerGame,
		SelectedByPercent:             m.SelectedByPercent,
		ExpectedGoalInvolvementsPer90: m.ExpectedGoalInvolvementsPer90,
		ExpectedGoalsConcededPer90:    m.ExpectedGoalsConcededPer90,
		TransfersInEvent:              m.TransfersInEvent,
		TransfersOutEvent:             m.TransfersOutEvent,
	}
}

func gameweekToModel(gw gameweek.Gameweek) gameweekTableModel {
	return gameweekTableModel{
		ID:              gw.ID,
		Name:            gw.Name,
		Deadline:        nullTime(gw.Deadline),
		AverageScore:    gw.AverageScore,
		HighestScore:    gw.HighestScore,
		IsPrevious:      gw.IsPrevious,
		IsCurrent:       gw.IsCurrent,
		IsNext:          gw.IsNext,
		Finished:        gw.Finished,
		TopElementID:    gw.TopElementID,
		MostCaptainedID: gw.MostCaptainedID,
	}
}

func (m gameweekTableModel) toDomain() gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:              m.ID,
		Name:            m.Name,
		Deadline:        m.Deadline.Time.UTC(),
		AverageScore:    m.AverageScore,
		HighestScore:    m.HighestScore,
		IsPrevious:      m.IsPrevious,
		IsCurrent:       m.IsCurrent,
		IsNext:          m.IsNext,
		Finished:        m.Finished,
		TopElementID:    m.TopElementID,
		MostCaptainedID: m.MostCaptainedID,
	}
}

func fixtureToModel(f fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		ID:             f.ID,
		Gameweek:       f.Gameweek,
		HomeTeamID:     f.HomeTeamID,
		AwayTeamID:     f.AwayTeamID,
		HomeDifficulty: f.HomeDifficulty,
		AwayDifficulty: f.AwayDifficulty,
		KickoffAt:      nullTime(f.KickoffAt),
		Started:        f.Started,
		Finished:       f.Finished,
		HomeScore:      nullInt(f.HomeScore),
		AwayScore:      nullInt(f.AwayScore),
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	out := fixture.Fixture{
		ID:             m.ID,
		Gameweek:       m.Gameweek,
		HomeTeamID:     m.HomeTeamID,
		AwayTeamID:     m.AwayTeamID,
		HomeDifficulty: m.HomeDifficulty,
		AwayDifficulty: m.AwayDifficulty,
		Started:        m.Started,
		Finished:       m.Finished,
		HomeScore:      intPtr(m.HomeScore),
		AwayScore:      intPtr(m.AwayScore),
	}
	if m.KickoffAt.Valid {
		out.KickoffAt = m.KickoffAt.Time.UTC()
	}
	return out
}

func liveStatToModel(s live.ElementStats) liveStatTableModel {
	return liveStatTableModel{
		Gameweek:    s.Gameweek,
		PlayerID:    s.PlayerID,
		Minutes:     s.Minutes,
		TotalPoints: s.TotalPoints,
		Goals:       s.Goals,
		Assists:     s.Assists,
		CleanSheets: s.CleanSheets,
		Bonus:       s.Bonus,
		BPS:         s.BPS,
	}
}

func (m liveStatTableModel) toDomain() live.ElementStats {
	return live.ElementStats{
		PlayerID:    m.PlayerID,
		Gameweek:    m.Gameweek,
		Minutes:     m.Minutes,
		TotalPoints: m.TotalPoints,
		Goals:       m.Goals,
		Assists:     m.Assists,
		CleanSheets: m.CleanSheets,
		Bonus:       m.Bonus,
		BPS:         m.BPS,
	}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
