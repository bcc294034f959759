package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// ClientsHandler handles the admin client registry.
type ClientsHandler struct {
	store  *store.Store
	logger *logging.Logger
}

// NewClientsHandler creates a clients handler.
func NewClientsHandler(st *store.Store, logger *logging.Logger) *ClientsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ClientsHandler{
		store:  st,
		logger: logger,
	}
}

// CreateClient registers a client.
// POST /admin/clients
func (h *ClientsHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req store.NewClient
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.store.AddClient(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"client": client})
}

// ListClients returns all registered clients, newest first.
// GET /admin/clients
func (h *ClientsHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients := h.store.Clients()
	writeJSON(w, http.StatusOK, map[string]any{
		"clients": clients,
		"total":   len(clients),
	})
}
