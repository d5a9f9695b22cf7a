package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type Handler struct {
	playerService   *usecase.PlayerService
	gameweekService *usecase.GameweekService
	squadService    *usecase.SquadAnalyticsService
	syncService     *usecase.SnapshotSyncService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	gameweekService *usecase.GameweekService,
	squadService *usecase.SquadAnalyticsService,
	syncService *usecase.SnapshotSyncService,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		playerService:   playerService,
		gameweekService: gameweekService,
		squadService:    squadService,
		syncService:     syncService,
		logger:          logging.OrDefault(logger),
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func parsePathID(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// parseQueryInt returns 0 when the parameter is absent.
func parseQueryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
