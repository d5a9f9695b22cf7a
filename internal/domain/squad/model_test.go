package squad

import (
	"errors"
	"testing"
)

func validPicks() []Pick {
	picks := make([]Pick, 0, SquadSize)
	for slot := 1; slot <= SquadSize; slot++ {
		pick := Pick{PlayerID: 100 + slot, Slot: slot, Multiplier: 1}
		if slot > StarterSlots {
			pick.Multiplier = 0
		}
		picks = append(picks, pick)
	}
	picks[0].IsCaptain = true
	picks[0].Multiplier = 2
	picks[1].IsViceCaptain = true
	return picks
}

func TestValidatePicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(p []Pick) []Pick
		wantErr error
	}{
		{
			name:   "valid squad",
			mutate: func(p []Pick) []Pick { return p },
		},
		{
			name:    "short squad",
			mutate:  func(p []Pick) []Pick { return p[:14] },
			wantErr: ErrInvalidPickCount,
		},
		{
			name: "slot out of range",
			mutate: func(p []Pick) []Pick {
				p[3].Slot = 16
				return p
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "duplicate slot",
			mutate: func(p []Pick) []Pick {
				p[3].Slot = p[4].Slot
				return p
			},
			wantErr: ErrDuplicateSlot,
		},
		{
			name: "duplicate player",
			mutate: func(p []Pick) []Pick {
				p[5].PlayerID = p[6].PlayerID
				return p
			},
			wantErr: ErrDuplicatePlayer,
		},
		{
			name: "two captains",
			mutate: func(p []Pick) []Pick {
				p[2].IsCaptain = true
				return p
			},
			wantErr: ErrCaptainCount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePicks(tc.mutate(validPicks()))
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEntryOwnsAndBench(t *testing.T) {
	t.Parallel()

	entry := Entry{ID: 1, Picks: validPicks()}
	if !entry.Owns(101) {
		t.Fatalf("expected entry to own player 101")
	}
	if entry.Owns(999) {
		t.Fatalf("unexpected ownership of player 999")
	}
	if !entry.Picks[11].IsBench() || entry.Picks[10].IsBench() {
		t.Fatalf("unexpected bench classification")
	}
	if got := len(entry.PlayerIDs()); got != SquadSize {
		t.Fatalf("unexpected player id count: got=%d want=%d", got, SquadSize)
	}
}
