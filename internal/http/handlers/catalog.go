package handlers

import (
	"net/http"

	"github.com/serenaspa/massoterapia-platform/internal/catalog"
	"github.com/serenaspa/massoterapia-platform/internal/whatsapp"
)

// CatalogHandler serves the static service menu the booking form renders.
type CatalogHandler struct {
	whatsappNumber string
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(whatsappNumber string) *CatalogHandler {
	return &CatalogHandler{whatsappNumber: whatsappNumber}
}

// GetCatalog returns the service menu, bookable time slots and the default
// WhatsApp deep link.
// GET /catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"services":    catalog.Services,
		"timeSlots":   catalog.TimeSlots,
		"whatsappUrl": whatsapp.Link(h.whatsappNumber, whatsapp.DefaultMessage),
	})
}
