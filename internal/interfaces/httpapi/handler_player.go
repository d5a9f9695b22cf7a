package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query, err := parsePlayerQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.playerService.ListPlayers(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "sort", query.Sort, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerRowToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerInsight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerInsight")
	defer span.End()

	playerID, err := parsePathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	insight, err := h.playerService.GetPlayerInsight(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player insight failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerInsightDTO{
		Player:             playerRowToDTO(insight.Row),
		Gameweek:           insight.Gameweek,
		Flags:              flagsToDTO(insight.Flags),
		Breakdown:          breakdownToDTO(insight.Breakdown),
		UpcomingDifficulty: insight.UpcomingDifficulty,
	})
}

// parsePlayerQuery reads max_price in millions ("7.5") and converts it to tenths.
func parsePlayerQuery(r *http.Request) (usecase.PlayerQuery, error) {
	values := r.URL.Query()
	query := usecase.PlayerQuery{
		Position: values.Get("position"),
		Search:   values.Get("search"),
		Sort:     values.Get("sort"),
		Order:    values.Get("order"),
	}

	var err error
	if query.TeamID, err = parseQueryInt(r, "team_id"); err != nil {
		return usecase.PlayerQuery{}, err
	}
	if query.MinMinutes, err = parseQueryInt(r, "min_minutes"); err != nil {
		return usecase.PlayerQuery{}, err
	}
	if query.Limit, err = parseQueryInt(r, "limit"); err != nil {
		return usecase.PlayerQuery{}, err
	}

	if raw := strings.TrimSpace(values.Get("max_price")); raw != "" {
		price, parseErr := decimal.NewFromString(raw)
		if parseErr != nil || price.IsNegative() {
			return usecase.PlayerQuery{}, fmt.Errorf("%w: max_price must be a non-negative number", usecase.ErrInvalidInput)
		}
		query.MaxPrice = price.Shift(1).Floor().IntPart()
	}

	return query, nil
}
