package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type playerRowDTO struct {
	ID                       int     `json:"id"`
	Name                     string  `json:"name"`
	TeamID                   int     `json:"teamId"`
	Team                     string  `json:"team"`
	Position                 string  `json:"position"`
	Price                    float64 `json:"price"`
	Status                   string  `json:"status"`
	ChanceOfPlayingNextRound *int    `json:"chanceOfPlayingNextRound,omitempty"`
	News                     string  `json:"news,omitempty"`
	TotalPoints              int     `json:"totalPoints"`
	EventPoints              int     `json:"eventPoints"`
	Minutes                  int     `json:"minutes"`
	Form                     float64 `json:"form"`
	SelectedByPercent        float64 `json:"selectedByPercent"`
	NetTransfers             int64   `json:"netTransfers"`
	PointsPerMillion         float64 `json:"pointsPerMillion"`
	MinutesPercentage        float64 `json:"minutesPercentage"`
	FixtureDifficulty        float64 `json:"fixtureDifficulty"`
	IsDifferential           bool    `json:"isDifferential"`
	CandidateScore           float64 `json:"candidateScore"`
	RiskSeverity             string  `json:"riskSeverity"`
}

type flagDTO struct {
	Kind     string  `json:"kind"`
	Severity string  `json:"severity"`
	Reason   string  `json:"reason"`
	Value    float64 `json:"value"`
}

type breakdownDTO struct {
	Form     float64 `json:"form"`
	Fixtures float64 `json:"fixtures"`
	Value    float64 `json:"value"`
	Minutes  float64 `json:"minutes"`
	Momentum float64 `json:"momentum"`
	Total    float64 `json:"total"`
}

type playerInsightDTO struct {
	Player             playerRowDTO `json:"player"`
	Gameweek           int          `json:"gameweek"`
	Flags              []flagDTO    `json:"flags"`
	Breakdown          breakdownDTO `json:"breakdown"`
	UpcomingDifficulty []int        `json:"upcomingDifficulty"`
}

type playerSummaryDTO struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	TeamID   int     `json:"teamId"`
	Position string  `json:"position"`
	Price    float64 `json:"price"`
}

type performerDTO struct {
	Player      playerSummaryDTO `json:"player"`
	Points      int              `json:"points"`
	Minutes     int              `json:"minutes"`
	Goals       int              `json:"goals"`
	Assists     int              `json:"assists"`
	Bonus       int              `json:"bonus"`
	CleanSheets int              `json:"cleanSheets"`
}

type transferDTO struct {
	Player       playerSummaryDTO `json:"player"`
	TransfersIn  int64            `json:"transfersIn"`
	TransfersOut int64            `json:"transfersOut"`
}

type gameweekSummaryDTO struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	Deadline           string         `json:"deadline,omitempty"`
	Finished           bool           `json:"finished"`
	IsCurrent          bool           `json:"isCurrent"`
	AverageScore       int            `json:"averageScore"`
	HighestScore       int            `json:"highestScore"`
	CurrentGameweek    int            `json:"currentGameweek"`
	LiveStatsAvailable bool           `json:"liveStatsAvailable"`
	TopPerformers      []performerDTO `json:"topPerformers"`
	MostTransferredIn  []transferDTO  `json:"mostTransferredIn"`
	MostTransferredOut []transferDTO  `json:"mostTransferredOut"`
}

type memberDTO struct {
	Player            playerSummaryDTO `json:"player"`
	Slot              int              `json:"slot"`
	IsBench           bool             `json:"isBench"`
	IsCaptain         bool             `json:"isCaptain"`
	IsViceCaptain     bool             `json:"isViceCaptain"`
	Multiplier        int              `json:"multiplier"`
	GameweekPoints    int              `json:"gameweekPoints"`
	PointsPerMillion  float64          `json:"pointsPerMillion"`
	MinutesPercentage float64          `json:"minutesPercentage"`
	FixtureDifficulty float64          `json:"fixtureDifficulty"`
	Severity          string           `json:"severity"`
	Flags             []flagDTO        `json:"flags"`
}

type candidateDTO struct {
	Player            playerSummaryDTO `json:"player"`
	Score             float64          `json:"score"`
	Breakdown         breakdownDTO     `json:"breakdown"`
	PriceDelta        float64          `json:"priceDelta"`
	FixtureDifficulty float64          `json:"fixtureDifficulty"`
	MinutesPercentage float64          `json:"minutesPercentage"`
	PointsPerMillion  float64          `json:"pointsPerMillion"`
}

type problemDTO struct {
	Member       memberDTO      `json:"member"`
	Replacements []candidateDTO `json:"replacements"`
}

type aggregatesDTO struct {
	MemberCount              int     `json:"memberCount"`
	BenchPointsWasted        int     `json:"benchPointsWasted"`
	AveragePPM               float64 `json:"averagePointsPerMillion"`
	AverageOwnership         float64 `json:"averageOwnership"`
	AverageFixtureDifficulty float64 `json:"averageFixtureDifficulty"`
	AverageMinutesPercentage float64 `json:"averageMinutesPercentage"`
	HighRiskCount            int     `json:"highRiskCount"`
}

type reportDTO struct {
	EntryID          int           `json:"entryId"`
	Gameweek         int           `json:"gameweek"`
	Bank             float64       `json:"bank"`
	Aggregates       aggregatesDTO `json:"aggregates"`
	Members          []memberDTO   `json:"members"`
	Problems         []problemDTO  `json:"problems"`
	SkippedPlayerIDs []int         `json:"skippedPlayerIds,omitempty"`
}

type replacementResultDTO struct {
	EntryID    int            `json:"entryId"`
	Gameweek   int            `json:"gameweek"`
	Bank       float64        `json:"bank"`
	Player     memberDTO      `json:"player"`
	Candidates []candidateDTO `json:"candidates"`
}

type syncTaskDTO struct {
	Task       string `json:"task"`
	Gameweek   int    `json:"gameweek,omitempty"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"durationMs"`
	Message    string `json:"message,omitempty"`
}

type syncResultDTO struct {
	RunID          string        `json:"runId"`
	StartedAt      string        `json:"startedAt"`
	DurationMs     int64         `json:"durationMs"`
	Players        int           `json:"players"`
	SkippedPlayers int           `json:"skippedPlayers"`
	Teams          int           `json:"teams"`
	Gameweeks      int           `json:"gameweeks"`
	Fixtures       int           `json:"fixtures"`
	SuccessCount   int           `json:"successCount"`
	FailedCount    int           `json:"failedCount"`
	Tasks          []syncTaskDTO `json:"tasks"`
}

// round2 keeps derived ratios readable in responses.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func tenthsToMillions(v int64) float64 {
	return decimal.New(v, -1).InexactFloat64()
}

func playerRowToDTO(row usecase.PlayerRow) playerRowDTO {
	p := row.Player
	return playerRowDTO{
		ID:                       p.ID,
		Name:                     p.DisplayName(),
		TeamID:                   p.TeamID,
		Team:                     row.Team.ShortName,
		Position:                 p.Position.Code(),
		Price:                    p.PriceMillions().InexactFloat64(),
		Status:                   string(p.Status),
		ChanceOfPlayingNextRound: p.ChanceOfPlayingNextRound,
		News:                     p.News,
		TotalPoints:              p.TotalPoints,
		EventPoints:              p.EventPoints,
		Minutes:                  p.Minutes,
		Form:                     p.Form,
		SelectedByPercent:        p.SelectedByPercent,
		NetTransfers:             p.NetTransfers(),
		PointsPerMillion:         round2(row.PointsPerMillion),
		MinutesPercentage:        round2(row.MinutesPercentage),
		FixtureDifficulty:        round2(row.FixtureDifficulty),
		IsDifferential:           row.IsDifferential,
		CandidateScore:           round2(row.CandidateScore),
		RiskSeverity:             row.RiskSeverity.String(),
	}
}

func playerToSummaryDTO(p player.Player) playerSummaryDTO {
	return playerSummaryDTO{
		ID:       p.ID,
		Name:     p.DisplayName(),
		TeamID:   p.TeamID,
		Position: p.Position.Code(),
		Price:    p.PriceMillions().InexactFloat64(),
	}
}

func flagsToDTO(flags []analytics.Flag) []flagDTO {
	out := make([]flagDTO, 0, len(flags))
	for _, flag := range flags {
		out = append(out, flagDTO{
			Kind:     string(flag.Kind),
			Severity: flag.Severity.String(),
			Reason:   flag.Reason,
			Value:    round2(flag.Value),
		})
	}
	return out
}

func breakdownToDTO(b analytics.ScoreBreakdown) breakdownDTO {
	return breakdownDTO{
		Form:     round2(b.Form),
		Fixtures: round2(b.Fixtures),
		Value:    round2(b.Value),
		Minutes:  round2(b.Minutes),
		Momentum: round2(b.Momentum),
		Total:    round2(b.Total()),
	}
}

func gameweekSummaryToDTO(summary usecase.GameweekSummary) gameweekSummaryDTO {
	meta := summary.Gameweek
	out := gameweekSummaryDTO{
		ID:                 meta.ID,
		Name:               meta.Name,
		Finished:           meta.Finished,
		IsCurrent:          meta.IsCurrent,
		AverageScore:       meta.AverageScore,
		HighestScore:       meta.HighestScore,
		CurrentGameweek:    summary.CurrentGameweek,
		LiveStatsAvailable: summary.LiveStatsAvailable,
		TopPerformers:      make([]performerDTO, 0, len(summary.TopPerformers)),
		MostTransferredIn:  transfersToDTO(summary.MostTransferredIn),
		MostTransferredOut: transfersToDTO(summary.MostTransferredOut),
	}
	if !meta.Deadline.IsZero() {
		out.Deadline = meta.Deadline.UTC().Format(time.RFC3339)
	}
	for _, item := range summary.TopPerformers {
		out.TopPerformers = append(out.TopPerformers, performerDTO{
			Player:      playerToSummaryDTO(item.Player),
			Points:      item.Stats.TotalPoints,
			Minutes:     item.Stats.Minutes,
			Goals:       item.Stats.Goals,
			Assists:     item.Stats.Assists,
			Bonus:       item.Stats.Bonus,
			CleanSheets: item.Stats.CleanSheets,
		})
	}
	return out
}

func transfersToDTO(players []player.Player) []transferDTO {
	out := make([]transferDTO, 0, len(players))
	for _, p := range players {
		out = append(out, transferDTO{
			Player:       playerToSummaryDTO(p),
			TransfersIn:  p.TransfersInEvent,
			TransfersOut: p.TransfersOutEvent,
		})
	}
	return out
}

func memberToDTO(m analytics.MemberReport) memberDTO {
	return memberDTO{
		Player:            playerToSummaryDTO(m.Player),
		Slot:              m.Pick.Slot,
		IsBench:           m.Pick.IsBench(),
		IsCaptain:         m.Pick.IsCaptain,
		IsViceCaptain:     m.Pick.IsViceCaptain,
		Multiplier:        m.Pick.Multiplier,
		GameweekPoints:    m.GameweekPoints,
		PointsPerMillion:  round2(m.PointsPerMillion),
		MinutesPercentage: round2(m.MinutesPercentage),
		FixtureDifficulty: round2(m.FixtureDifficulty),
		Severity:          m.Severity.String(),
		Flags:             flagsToDTO(m.Flags),
	}
}

func candidatesToDTO(candidates []analytics.Candidate) []candidateDTO {
	out := make([]candidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateDTO{
			Player:            playerToSummaryDTO(c.Player),
			Score:             round2(c.Score),
			Breakdown:         breakdownToDTO(c.Breakdown),
			PriceDelta:        tenthsToMillions(c.PriceDelta),
			FixtureDifficulty: round2(c.FixtureDifficulty),
			MinutesPercentage: round2(c.MinutesPercentage),
			PointsPerMillion:  round2(c.PointsPerMillion),
		})
	}
	return out
}

func reportToDTO(report analytics.Report) reportDTO {
	agg := report.Aggregates
	out := reportDTO{
		EntryID:  report.EntryID,
		Gameweek: report.Gameweek,
		Bank:     tenthsToMillions(report.Bank),
		Aggregates: aggregatesDTO{
			MemberCount:              agg.MemberCount,
			BenchPointsWasted:        agg.BenchPointsWasted,
			AveragePPM:               round2(agg.AveragePPM),
			AverageOwnership:         round2(agg.AverageOwnership),
			AverageFixtureDifficulty: round2(agg.AverageFixtureDifficulty),
			AverageMinutesPercentage: round2(agg.AverageMinutesPercentage),
			HighRiskCount:            agg.HighRiskCount,
		},
		Members:          make([]memberDTO, 0, len(report.Members)),
		Problems:         make([]problemDTO, 0, len(report.Problems)),
		SkippedPlayerIDs: report.SkippedPlayerIDs,
	}
	for _, m := range report.Members {
		out.Members = append(out.Members, memberToDTO(m))
	}
	for _, p := range report.Problems {
		out.Problems = append(out.Problems, problemDTO{
			Member:       memberToDTO(p.Member),
			Replacements: candidatesToDTO(p.Replacements),
		})
	}
	return out
}

func syncResultToDTO(result usecase.SyncResult) syncResultDTO {
	out := syncResultDTO{
		RunID:          result.RunID,
		StartedAt:      result.StartedAt.UTC().Format(time.RFC3339),
		DurationMs:     result.DurationMs,
		Players:        result.Players,
		SkippedPlayers: result.SkippedPlayers,
		Teams:          result.Teams,
		Gameweeks:      result.Gameweeks,
		Fixtures:       result.Fixtures,
		SuccessCount:   result.SuccessCount,
		FailedCount:    result.FailedCount,
		Tasks:          make([]syncTaskDTO, 0, len(result.Tasks)),
	}
	for _, task := range result.Tasks {
		out.Tasks = append(out.Tasks, syncTaskDTO{
			Task:       task.Task,
			Gameweek:   task.Gameweek,
			Status:     task.Status,
			Records:    task.Records,
			DurationMs: task.DurationMs,
			Message:    task.Message,
		})
	}
	return out
}
