package httpapi

import (
	"net/http"
)

func (h *Handler) GetCurrentGameweekSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameweekSummary")
	defer span.End()

	summary, err := h.gameweekService.Summary(ctx, 0)
	if err != nil {
		h.logger.WarnContext(ctx, "get current gameweek summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameweekSummaryToDTO(summary))
}

func (h *Handler) GetGameweekSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekSummary")
	defer span.End()

	gw, err := parsePathID(r, "gameweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.gameweekService.Summary(ctx, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek summary failed", "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameweekSummaryToDTO(summary))
}
