// Package handlers holds the HTTP handlers for the public site API and the
// admin back office.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serenaspa/massoterapia-platform/internal/notify"
	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/internal/whatsapp"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// LeadsHandler handles WhatsApp lead capture and the admin lead views.
type LeadsHandler struct {
	store          *store.Store
	notifier       *notify.Service
	whatsappNumber string
	logger         *logging.Logger
}

// NewLeadsHandler creates a leads handler. notifier may be nil.
func NewLeadsHandler(st *store.Store, notifier *notify.Service, whatsappNumber string, logger *logging.Logger) *LeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadsHandler{
		store:          st,
		notifier:       notifier,
		whatsappNumber: whatsappNumber,
		logger:         logger,
	}
}

// LeadCaptureResponse is returned after a successful lead capture. The
// whatsapp_url deep link lets the frontend open the conversation right away.
type LeadCaptureResponse struct {
	Lead        *store.WhatsAppLead `json:"lead"`
	WhatsAppURL string              `json:"whatsapp_url"`
}

// CaptureLead records a WhatsApp lead from the site widget.
// POST /leads/whatsapp
func (h *LeadsHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	var req store.NewWhatsAppLead
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.store.AddWhatsAppLead(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyLeadAsync(lead)
	}

	writeJSON(w, http.StatusCreated, LeadCaptureResponse{
		Lead:        lead,
		WhatsAppURL: whatsapp.Link(h.whatsappNumber, whatsapp.LeadMessage(lead.Name, lead.Message)),
	})
}

// ListLeads returns all captured leads, newest first.
// GET /admin/leads
func (h *LeadsHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads := h.store.WhatsAppLeads()
	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"total": len(leads),
	})
}

// ConvertLeadRequest carries the extra client fields the lead record lacks.
type ConvertLeadRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birthDate"`
	Notes     string `json:"notes"`
}

// ConvertLead registers a lead as a client. The lead record is kept as-is;
// conversion only creates the client.
// POST /admin/leads/{id}/convert
func (h *LeadsHandler) ConvertLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, ok := h.store.WhatsAppLeadByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	// The extra client fields are optional; an empty body converts with the
	// lead's own data.
	var req ConvertLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	phone := req.Phone
	if phone == "" {
		phone = lead.WhatsApp
	}

	client, err := h.store.AddClient(r.Context(), &store.NewClient{
		Name:      lead.Name,
		Email:     req.Email,
		Phone:     phone,
		WhatsApp:  lead.WhatsApp,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("lead converted to client", "lead_id", lead.ID, "client_id", client.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"client": client})
}
