package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

func TestChunk(t *testing.T) {
	items := make([]int, 1201)
	batches := chunk(items, upsertBatchSize)
	if len(batches) != 3 {
		t.Fatalf("unexpected batch count: got=%d want=3", len(batches))
	}
	if len(batches[2]) != 201 {
		t.Fatalf("unexpected last batch size: got=%d want=201", len(batches[2]))
	}
	if got := chunk([]int{}, upsertBatchSize); len(got) != 0 {
		t.Fatalf("expected no batches for empty input, got=%d", len(got))
	}
}

func TestPlayerModel_PreservesNullableChance(t *testing.T) {
	chance := 25
	in := player.Player{ID: 7, WebName: "Saka", Position: player.PositionMidfielder, Price: 101, Status: player.StatusDoubtful, ChanceOfPlayingNextRound: &chance}

	out := playerToModel(in).toDomain()
	if out.ChanceOfPlayingNextRound == nil || *out.ChanceOfPlayingNextRound != 25 {
		t.Fatalf("unexpected chance of playing: %v", out.ChanceOfPlayingNextRound)
	}
	if out.Position != player.PositionMidfielder || out.Status != player.StatusDoubtful {
		t.Fatalf("unexpected player: %+v", out)
	}

	in.ChanceOfPlayingNextRound = nil
	if got := playerToModel(in).toDomain().ChanceOfPlayingNextRound; got != nil {
		t.Fatalf("expected nil chance, got=%d", *got)
	}
}

func TestFixtureModel_UnscheduledKickoff(t *testing.T) {
	model := fixtureToModel(fixture.Fixture{ID: 1, Gameweek: 3})
	if model.KickoffAt.Valid || model.HomeScore.Valid {
		t.Fatalf("expected null kickoff and score: %+v", model)
	}

	kickoff := time.Date(2025, 9, 1, 15, 0, 0, 0, time.UTC)
	score := 2
	out := fixtureToModel(fixture.Fixture{ID: 1, KickoffAt: kickoff, HomeScore: &score}).toDomain()
	if !out.KickoffAt.Equal(kickoff) || out.HomeScore == nil || *out.HomeScore != 2 || out.AwayScore != nil {
		t.Fatalf("unexpected fixture: %+v", out)
	}
}

func TestColumnsMatchSchema(t *testing.T) {
	if len(playerColumns) != 23 {
		t.Fatalf("unexpected player column count: got=%d", len(playerColumns))
	}
	if liveStatColumns[0] != "gameweek" || liveStatColumns[1] != "player_id" {
		t.Fatalf("unexpected live stat columns: %v", liveStatColumns)
	}
}
