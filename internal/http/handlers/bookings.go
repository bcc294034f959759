package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serenaspa/massoterapia-platform/internal/catalog"
	"github.com/serenaspa/massoterapia-platform/internal/notify"
	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// BookingsHandler handles the public booking form and the admin booking views.
type BookingsHandler struct {
	store    *store.Store
	notifier *notify.Service
	logger   *logging.Logger
}

// NewBookingsHandler creates a bookings handler. notifier may be nil.
func NewBookingsHandler(st *store.Store, notifier *notify.Service, logger *logging.Logger) *BookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingsHandler{
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateBooking records a booking request from the site form.
// POST /bookings
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req store.NewServiceBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !catalog.ValidTimeSlot(req.PreferredTime) {
		writeError(w, http.StatusBadRequest, "preferredTime is not a bookable slot")
		return
	}

	booking, err := h.store.AddServiceBooking(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyBookingAsync(booking)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

// ListBookings returns bookings, newest first, optionally filtered by status.
// GET /admin/bookings?status=Confirmado
func (h *BookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings := h.store.ServiceBookings()

	if status := r.URL.Query().Get("status"); status != "" {
		if !store.BookingStatus(status).Valid() {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		filtered := make([]store.ServiceBooking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == store.BookingStatus(status) {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// UpdateBooking applies a partial update to one booking.
// PATCH /admin/bookings/{id}
func (h *BookingsHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update store.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.PreferredTime != nil && !catalog.ValidTimeSlot(*update.PreferredTime) {
		writeError(w, http.StatusBadRequest, "preferredTime is not a bookable slot")
		return
	}

	booking, found, err := h.store.UpdateServiceBooking(r.Context(), id, &update)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}
