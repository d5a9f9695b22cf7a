package memory

import (
	"strconv"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
)

const (
	SeedCurrentGameweek = 10
	SeedEntryID         = 1001
)

var seedSeasonStart = time.Date(2025, time.August, 15, 17, 30, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 5},
		{ID: 2, Name: "Burnley", ShortName: "BUR", Strength: 2},
		{ID: 3, Name: "Chelsea", ShortName: "CHE", Strength: 4},
		{ID: 4, Name: "Liverpool", ShortName: "LIV", Strength: 5},
		{ID: 5, Name: "Man City", ShortName: "MCI", Strength: 5},
		{ID: 6, Name: "Wolves", ShortName: "WOL", Strength: 2},
	}
}

func SeedGameweeks() []gameweek.Gameweek {
	out := make([]gameweek.Gameweek, 0, 38)
	for id := 1; id <= 38; id++ {
		gw := gameweek.Gameweek{
			ID:         id,
			Name:       "Gameweek " + strconv.Itoa(id),
			Deadline:   seedSeasonStart.AddDate(0, 0, 7*(id-1)),
			IsPrevious: id == SeedCurrentGameweek-1,
			IsCurrent:  id == SeedCurrentGameweek,
			IsNext:     id == SeedCurrentGameweek+1,
			Finished:   id < SeedCurrentGameweek,
		}
		if id < SeedCurrentGameweek {
			gw.AverageScore = 48 + id%7
			gw.HighestScore = 110 + id*2
		}
		out = append(out, gw)
	}
	return out
}

// SeedFixtures builds a rotating round robin between the seeded teams for gameweeks 8 to 16.
func SeedFixtures() []fixture.Fixture {
	pairings := [][3][2]int{
		{{1, 2}, {3, 4}, {5, 6}},
		{{4, 1}, {6, 3}, {2, 5}},
		{{1, 6}, {5, 3}, {4, 2}},
		{{3, 1}, {2, 6}, {5, 4}},
		{{1, 5}, {4, 6}, {3, 2}},
	}
	strength := make(map[int]int)
	for _, t := range SeedTeams() {
		strength[t.ID] = t.Strength
	}

	out := make([]fixture.Fixture, 0, 27)
	id := 1
	for gw := 8; gw <= 16; gw++ {
		kickoff := seedSeasonStart.AddDate(0, 0, 7*(gw-1)+1)
		for i, pair := range pairings[gw%len(pairings)] {
			home, away := pair[0], pair[1]
			f := fixture.Fixture{
				ID:             id,
				Gameweek:       gw,
				HomeTeamID:     home,
				AwayTeamID:     away,
				HomeDifficulty: seedDifficulty(strength[away]),
				AwayDifficulty: seedDifficulty(strength[home]),
				KickoffAt:      kickoff.Add(time.Duration(i) * 2 * time.Hour),
			}
			if gw < SeedCurrentGameweek {
				homeScore, awayScore := (home+gw)%3, (away+gw)%2
				f.Started, f.Finished = true, true
				f.HomeScore, f.AwayScore = &homeScore, &awayScore
			}
			out = append(out, f)
			id++
		}
	}
	return out
}

func seedDifficulty(opponentStrength int) int {
	return min(max(opponentStrength, 1), 5)
}

func SeedPlayers() []player.Player {
	chance25 := 25
	chance75 := 75
	rows := []player.Player{
		{ID: 1, WebName: "Raya", TeamID: 1, Position: player.PositionGoalkeeper, Price: 55, TotalPoints: 52, Minutes: 900, CleanSheets: 5, Form: 5.2, SelectedByPercent: 28.1, ExpectedGoalsConcededPer90: 0.7},
		{ID: 2, WebName: "Dubravka", TeamID: 2, Position: player.PositionGoalkeeper, Price: 40, TotalPoints: 31, Minutes: 900, CleanSheets: 1, Form: 2.8, SelectedByPercent: 9.4, ExpectedGoalsConcededPer90: 2.1},
		{ID: 3, WebName: "Gabriel", TeamID: 1, Position: player.PositionDefender, Price: 62, TotalPoints: 58, Minutes: 880, Goals: 2, CleanSheets: 5, Form: 6.0, SelectedByPercent: 35.2, ExpectedGoalsConcededPer90: 0.7},
		{ID: 4, WebName: "Cucurella", TeamID: 3, Position: player.PositionDefender, Price: 60, TotalPoints: 45, Minutes: 860, Assists: 2, CleanSheets: 3, Form: 4.1, SelectedByPercent: 18.0, ExpectedGoalsConcededPer90: 1.1},
		{ID: 5, WebName: "Virgil", TeamID: 4, Position: player.PositionDefender, Price: 60, TotalPoints: 40, Minutes: 900, Goals: 1, CleanSheets: 2, Form: 3.0, SelectedByPercent: 22.4, ExpectedGoalsConcededPer90: 1.2},
		{ID: 6, WebName: "Gvardiol", TeamID: 5, Position: player.PositionDefender, Price: 60, TotalPoints: 38, Minutes: 720, Goals: 1, CleanSheets: 3, Form: 3.5, SelectedByPercent: 12.7, ExpectedGoalsConcededPer90: 0.9},
		{ID: 7, WebName: "Esteve", TeamID: 2, Position: player.PositionDefender, Price: 40, TotalPoints: 22, Minutes: 310, Form: 1.0, SelectedByPercent: 4.2, ExpectedGoalsConcededPer90: 2.3, TransfersInEvent: 800, TransfersOutEvent: 26000},
		{ID: 8, WebName: "Saka", TeamID: 1, Position: player.PositionMidfielder, Price: 101, TotalPoints: 72, Minutes: 810, Goals: 5, Assists: 4, Form: 7.2, SelectedByPercent: 41.5, ExpectedGoalInvolvementsPer90: 0.81, TransfersInEvent: 120000, TransfersOutEvent: 30000},
		{ID: 9, WebName: "M.Salah", TeamID: 4, Position: player.PositionMidfielder, Price: 143, TotalPoints: 66, Minutes: 900, Goals: 4, Assists: 5, Form: 4.8, SelectedByPercent: 24.0, ExpectedGoalInvolvementsPer90: 0.74, TransfersInEvent: 15000, TransfersOutEvent: 240000},
		{ID: 10, WebName: "Palmer", TeamID: 3, Position: player.PositionMidfielder, Price: 104, Status: player.StatusDoubtful, ChanceOfPlayingNextRound: &chance75, News: "Groin injury - 75% chance of playing", TotalPoints: 35, Minutes: 420, Goals: 2, Assists: 1, Form: 3.1, SelectedByPercent: 19.6, ExpectedGoalInvolvementsPer90: 0.65},
		{ID: 11, WebName: "Foden", TeamID: 5, Position: player.PositionMidfielder, Price: 80, TotalPoints: 41, Minutes: 640, Goals: 2, Assists: 2, Form: 4.0, SelectedByPercent: 6.8, ExpectedGoalInvolvementsPer90: 0.42},
		{ID: 12, WebName: "J.Gomes", TeamID: 6, Position: player.PositionMidfielder, Price: 50, TotalPoints: 19, Minutes: 700, Form: 1.4, SelectedByPercent: 1.9, ExpectedGoalInvolvementsPer90: 0.08},
		{ID: 13, WebName: "Haaland", TeamID: 5, Position: player.PositionForward, Price: 147, TotalPoints: 90, Minutes: 880, Goals: 12, Assists: 1, Form: 8.9, SelectedByPercent: 68.3, ExpectedGoalInvolvementsPer90: 1.12, TransfersInEvent: 90000, TransfersOutEvent: 8000},
		{ID: 14, WebName: "Watkins", TeamID: 6, Position: player.PositionForward, Price: 85, Status: player.StatusInjured, ChanceOfPlayingNextRound: &chance25, News: "Hamstring injury - 25% chance of playing", TotalPoints: 28, Minutes: 520, Goals: 2, Form: 1.8, SelectedByPercent: 7.1, ExpectedGoalInvolvementsPer90: 0.21, TransfersInEvent: 1200, TransfersOutEvent: 54000},
		{ID: 15, WebName: "Flemming", TeamID: 2, Position: player.PositionForward, Price: 55, TotalPoints: 24, Minutes: 610, Goals: 3, Form: 2.2, SelectedByPercent: 3.3, ExpectedGoalInvolvementsPer90: 0.33},
		{ID: 16, WebName: "Semenyo", TeamID: 6, Position: player.PositionMidfielder, Price: 72, TotalPoints: 60, Minutes: 900, Goals: 6, Assists: 2, Form: 6.8, SelectedByPercent: 11.2, ExpectedGoalInvolvementsPer90: 0.61, TransfersInEvent: 180000, TransfersOutEvent: 6000},
		{ID: 17, WebName: "Rice", TeamID: 1, Position: player.PositionMidfielder, Price: 70, TotalPoints: 49, Minutes: 880, Goals: 2, Assists: 3, Form: 5.5, SelectedByPercent: 14.9, ExpectedGoalInvolvementsPer90: 0.38},
		{ID: 18, WebName: "Timber", TeamID: 1, Position: player.PositionDefender, Price: 58, TotalPoints: 55, Minutes: 850, Goals: 1, Assists: 2, CleanSheets: 5, Form: 6.1, SelectedByPercent: 16.5, ExpectedGoalsConcededPer90: 0.7, TransfersInEvent: 70000, TransfersOutEvent: 4000},
		{ID: 19, WebName: "Joao Pedro", TeamID: 3, Position: player.PositionForward, Price: 77, TotalPoints: 54, Minutes: 830, Goals: 5, Assists: 3, Form: 6.3, SelectedByPercent: 21.8, ExpectedGoalInvolvementsPer90: 0.72, TransfersInEvent: 95000, TransfersOutEvent: 11000},
		{ID: 20, WebName: "Thiago", TeamID: 2, Position: player.PositionForward, Price: 65, TotalPoints: 47, Minutes: 860, Goals: 6, Form: 5.0, SelectedByPercent: 8.8, ExpectedGoalInvolvementsPer90: 0.55},
		{ID: 21, WebName: "Sanchez", TeamID: 3, Position: player.PositionGoalkeeper, Price: 50, TotalPoints: 40, Minutes: 900, CleanSheets: 3, Form: 4.5, SelectedByPercent: 10.2, ExpectedGoalsConcededPer90: 1.0},
	}

	out := make([]player.Player, 0, len(rows))
	for _, p := range rows {
		if p.Status == "" {
			p.Status = player.StatusAvailable
		}
		p.EventPoints = int(p.Form)
		p.PointsPerGame = float64(p.TotalPoints) / float64(SeedCurrentGameweek-1)
		out = append(out, p)
	}
	return out
}

// SeedEntries returns a demo manager squad for the current gameweek.
func SeedEntries() []squad.Entry {
	playerIDs := []int{1, 3, 4, 5, 8, 9, 10, 11, 13, 14, 15, 2, 6, 12, 7}
	picks := make([]squad.Pick, 0, len(playerIDs))
	for i, id := range playerIDs {
		slot := i + 1
		pick := squad.Pick{PlayerID: id, Slot: slot, Multiplier: 1}
		switch {
		case id == 13:
			pick.IsCaptain = true
			pick.Multiplier = 2
		case id == 8:
			pick.IsViceCaptain = true
		case slot > squad.StarterSlots:
			pick.Multiplier = 0
		}
		picks = append(picks, pick)
	}

	return []squad.Entry{{
		ID:       SeedEntryID,
		Gameweek: SeedCurrentGameweek,
		Picks:    picks,
		Bank:     15,
		Value:    1012,
	}}
}

// SeedLiveStats holds points already scored in the current gameweek by the seeded players.
func SeedLiveStats() []live.ElementStats {
	points := map[int]int{1: 6, 2: 2, 3: 8, 4: 1, 5: 2, 6: 6, 7: 1, 8: 12, 9: 3, 10: 0, 11: 5, 12: 1, 13: 13, 14: 0, 15: 2, 16: 9, 17: 3, 18: 6, 19: 7, 20: 2, 21: 3}
	out := make([]live.ElementStats, 0, len(points))
	for id := 1; id <= len(points); id++ {
		minutes := 90
		if points[id] == 0 {
			minutes = 0
		}
		out = append(out, live.ElementStats{
			PlayerID:    id,
			Gameweek:    SeedCurrentGameweek,
			Minutes:     minutes,
			TotalPoints: points[id],
		})
	}
	return out
}
