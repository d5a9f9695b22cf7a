package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type snapshotSyncRequest struct {
	Gameweeks []int `json:"gameweeks" validate:"omitempty,max=38,dive,gte=1,lte=38"`
}

func (h *Handler) RunSnapshotSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSnapshotSyncJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: snapshot sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeSnapshotSyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.syncService.Sync(ctx, usecase.SyncInput{Gameweeks: req.Gameweeks})
	if err != nil {
		h.logger.WarnContext(ctx, "run snapshot sync job failed", "gameweeks", req.Gameweeks, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultToDTO(result))
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeSnapshotSyncRequest treats an empty body as a default sync.
func decodeSnapshotSyncRequest(r *http.Request) (snapshotSyncRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return snapshotSyncRequest{}, fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}

	var req snapshotSyncRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}
	if err := strictJSON.Unmarshal(body, &req); err != nil {
		return snapshotSyncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}
