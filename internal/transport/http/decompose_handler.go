package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "lmdicli/internal/errors"
	"lmdicli/internal/services"
	api "lmdicli/pkg/contracts/api/v1"
)

// DecomposeHandler handles decomposition HTTP requests
type DecomposeHandler struct {
	service *services.DecompositionService
	logger  *slog.Logger
}

// NewDecomposeHandler creates a new decomposition handler
func NewDecomposeHandler(service *services.DecompositionService, logger *slog.Logger) *DecomposeHandler {
	return &DecomposeHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the decomposition routes
func (h *DecomposeHandler) RegisterRoutes(r chi.Router) {
	r.Post("/decompose", h.Decompose)
}

// Decompose runs an LMDI decomposition for the posted panel
func (h *DecomposeHandler) Decompose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.DecompositionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.WarnContext(ctx, "malformed decomposition request",
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	resp, apiErr := h.service.Decompose(ctx, &req)
	if apiErr != nil {
		h.logger.WarnContext(ctx, "decomposition request failed",
			slog.String("error_code", apiErr.ErrorCode),
			slog.Int("status", apiErr.StatusCode))
		apierrors.WriteError(w, apiErr)
		return
	}

	render.JSON(w, r, resp)
}
