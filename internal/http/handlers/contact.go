package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/serenaspa/massoterapia-platform/internal/notify"
	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// ContactHandler handles the site contact form and the admin contact list.
type ContactHandler struct {
	store    *store.Store
	notifier *notify.Service
	logger   *logging.Logger
}

// NewContactHandler creates a contact handler. notifier may be nil.
func NewContactHandler(st *store.Store, notifier *notify.Service, logger *logging.Logger) *ContactHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactHandler{
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitContact records a contact form submission.
// POST /contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req store.NewContactForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.store.AddContactForm(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyContactAsync(contact)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"contact": contact})
}

// ListContacts returns all contact submissions, newest first.
// GET /admin/contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts := h.store.ContactForms()
	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": contacts,
		"total":    len(contacts),
	})
}
