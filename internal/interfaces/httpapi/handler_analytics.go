package httpapi

import (
	"net/http"
)

func (h *Handler) AnalyzeSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeSquad")
	defer span.End()

	entryID, err := parsePathID(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := parseQueryInt(r, "gameweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.squadService.Analyze(ctx, entryID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "analyze squad failed", "entry_id", entryID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, reportToDTO(report))
}

func (h *Handler) ListReplacements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReplacements")
	defer span.End()

	entryID, err := parsePathID(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := parsePathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := parseQueryInt(r, "gameweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.squadService.Replacements(ctx, entryID, playerID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "list replacements failed",
			"entry_id", entryID,
			"player_id", playerID,
			"gameweek", gw,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, replacementResultDTO{
		EntryID:    result.EntryID,
		Gameweek:   result.Gameweek,
		Bank:       tenthsToMillions(result.Bank),
		Player:     memberToDTO(result.Member),
		Candidates: candidatesToDTO(result.Candidates),
	})
}
