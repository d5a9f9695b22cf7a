package usecase

import (
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
)

func sampleGameweeks() []gameweek.Gameweek {
	return []gameweek.Gameweek{
		{ID: 9, Name: "Gameweek 9", Finished: true, IsPrevious: true, AverageScore: 48, HighestScore: 112},
		{ID: 10, Name: "Gameweek 10", IsCurrent: true, AverageScore: 51, HighestScore: 120, TopElementID: 3},
		{ID: 11, Name: "Gameweek 11", IsNext: true},
	}
}

func sampleTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 5},
		{ID: 2, Name: "Burnley", ShortName: "BUR", Strength: 2},
	}
}

// sampleFixtures gives team 1 easy fixtures (2) and team 2 hard ones (4).
func sampleFixtures() []fixture.Fixture {
	kickoff := time.Date(2025, 11, 1, 15, 0, 0, 0, time.UTC)
	out := make([]fixture.Fixture, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, fixture.Fixture{
			ID:             100 + i,
			Gameweek:       10 + i,
			HomeTeamID:     1,
			AwayTeamID:     3,
			HomeDifficulty: 2,
			AwayDifficulty: 4,
			KickoffAt:      kickoff.Add(time.Duration(i) * 7 * 24 * time.Hour),
		}, fixture.Fixture{
			ID:             200 + i,
			Gameweek:       10 + i,
			HomeTeamID:     4,
			AwayTeamID:     2,
			HomeDifficulty: 2,
			AwayDifficulty: 4,
			KickoffAt:      kickoff.Add(time.Duration(i) * 7 * 24 * time.Hour),
		})
	}
	return out
}

func samplePlayer(id, teamID int, position player.Position, price int64) player.Player {
	return player.Player{
		ID:                            id,
		WebName:                       "Player",
		SecondName:                    "Player",
		TeamID:                        teamID,
		Position:                      position,
		Price:                         price,
		Status:                        player.StatusAvailable,
		TotalPoints:                   50,
		EventPoints:                   4,
		Minutes:                       810,
		Form:                          5,
		SelectedByPercent:             20,
		ExpectedGoalInvolvementsPer90: 0.4,
		ExpectedGoalsConcededPer90:    1.0,
	}
}

// samplePool builds a 15-man squad (ids 1-15) plus free agents 20-23.
func samplePool() []player.Player {
	positions := []player.Position{
		player.PositionGoalkeeper, player.PositionDefender, player.PositionDefender, player.PositionDefender,
		player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
		player.PositionForward, player.PositionForward, player.PositionDefender,
		player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
	}
	pool := make([]player.Player, 0, len(positions)+4)
	for i, position := range positions {
		pool = append(pool, samplePlayer(i+1, 1, position, 60))
	}

	pool[4].WebName = "Saka"
	pool[4].TotalPoints = 90
	pool[8].TeamID = 2
	pool[8].Minutes = 150
	pool[8].WebName = "Struggler"

	cheap := samplePlayer(20, 1, player.PositionForward, 55)
	cheap.WebName = "Bargain"
	cheap.Form = 7
	pricey := samplePlayer(21, 1, player.PositionForward, 90)
	pricey.WebName = "Haaland"
	pricey.TotalPoints = 120
	mid := samplePlayer(22, 1, player.PositionMidfielder, 45)
	mid.SelectedByPercent = 3
	mid.TransfersInEvent = 80_000
	fwd := samplePlayer(23, 2, player.PositionForward, 60)
	fwd.Form = 2.5

	return append(pool, cheap, pricey, mid, fwd)
}

func sampleEntry(entryID, gw int) squad.Entry {
	picks := make([]squad.Pick, 0, squad.SquadSize)
	for slot := 1; slot <= squad.SquadSize; slot++ {
		picks = append(picks, squad.Pick{PlayerID: slot, Slot: slot, Multiplier: 1})
	}
	picks[4].IsCaptain = true
	picks[4].Multiplier = 2
	return squad.Entry{ID: entryID, Gameweek: gw, Picks: picks, Bank: 5, Value: 1000}
}
