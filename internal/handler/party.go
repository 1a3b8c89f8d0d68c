package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cadastra/cadastra/internal/handler/dto"
	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/service"
	"github.com/cadastra/cadastra/internal/store"
)

// PartyHandler handles HTTP requests for party operations.
type PartyHandler struct {
	svc    *service.PartyService
	logger *slog.Logger
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(svc *service.PartyService, logger *slog.Logger) *PartyHandler {
	return &PartyHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/parties.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	party, err := h.svc.CreateParty(r.Context(), req.ToPartyInput())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("party_created", "party_id", party.ID, "kind", party.Kind)

	writeJSON(w, http.StatusCreated, party)
}

// Get handles GET /api/v1/parties/{id}.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	party, err := h.svc.GetParty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, party)
}

// List handles GET /api/v1/parties. Supports kind and q query params;
// q matches name, document and email case-insensitively.
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := store.PartyFilter{
		Kind:  model.PartyKind(query.Get("kind")),
		Query: query.Get("q"),
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", "Kind must be PF or PJ")
		return
	}

	parties, err := h.svc.ListParties(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, parties)
}

// Update handles PUT /api/v1/parties/{id}.
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	party, err := h.svc.UpdateParty(r.Context(), chi.URLParam(r, "id"), req.ToPartyPatchInput())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, party)
}

// Delete handles DELETE /api/v1/parties/{id}. Admin only, enforced by
// route middleware.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteParty(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
