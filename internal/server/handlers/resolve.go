package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/core"
	apperrors "github.com/boardlens/boardlens/internal/errors"
)

// Resolver runs the resolution pipeline for a query.
type Resolver interface {
	Resolve(ctx context.Context, query string) *core.Resolution
}

// HistoryWriter persists terminal resolutions.
type HistoryWriter interface {
	InsertResolution(ctx context.Context, res *core.Resolution) error
}

// ResolveHandler serves GET /v1/resolve?query=NAME. History persistence is
// best effort and never fails the request.
func ResolveHandler(resolver Resolver, history HistoryWriter, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("query"))
		if query == "" {
			respondWithError(w, r, apperrors.NewInvalidInputError("query parameter is required"))
			return
		}

		res := resolver.Resolve(r.Context(), query)

		if history != nil {
			if err := history.InsertResolution(r.Context(), res); err != nil && logger != nil {
				logger.Warn("failed to persist resolution",
					zap.String("query", query),
					zap.Error(err))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(res)
	}
}
