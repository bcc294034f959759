package store

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a service booking. The set is
// closed, but transitions are deliberately unrestricted: staff may move a
// booking between any two states, including reopening a cancelled one.
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "Agendado"
	StatusConfirmed  BookingStatus = "Confirmado"
	StatusInProgress BookingStatus = "Em andamento"
	StatusCompleted  BookingStatus = "Concluído"
	StatusCancelled  BookingStatus = "Cancelado"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// WhatsAppLead is a contact captured from the WhatsApp quick-contact flow.
// Leads are create-only; converting one to a client leaves it untouched.
type WhatsAppLead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WhatsApp  string    `json:"whatsapp"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactForm is a message captured from the general contact form.
type ContactForm struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ServiceBooking is an appointment request. Service is the full display
// string from the catalog (label, price and duration), kept opaque here.
type ServiceBooking struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Service       string        `json:"service"`
	PreferredDate string        `json:"preferredDate"`
	PreferredTime string        `json:"preferredTime"`
	Message       string        `json:"message"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Client is a converted/registered customer record.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Address   string    `json:"address,omitempty"`
	BirthDate string    `json:"birthDate,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewWhatsAppLead is the input for capturing a WhatsApp lead.
type NewWhatsAppLead struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Message  string `json:"message"`
}

// Validate validates the lead capture input.
func (r *NewWhatsAppLead) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.WhatsApp) == "" {
		return ErrMissingContact
	}
	return nil
}

// NewContactForm is the input for a contact form submission. The email is
// stored as given; the store does not validate its format.
type NewContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Validate validates the contact form input.
func (r *NewContactForm) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	return nil
}

// NewServiceBooking is the input for an appointment request. Status is not
// accepted here: every booking starts as Agendado.
type NewServiceBooking struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Service       string `json:"service"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Message       string `json:"message"`
}

// Validate validates the booking input.
func (r *NewServiceBooking) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Phone == "" && r.Email == "" {
		return ErrMissingContact
	}
	if r.Service == "" || r.PreferredDate == "" || r.PreferredTime == "" {
		return ErrIncompleteBooking
	}
	return nil
}

// NewClient is the input for registering a client.
type NewClient struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Address   string `json:"address,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Validate validates the client input.
func (r *NewClient) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// BookingUpdate is a partial update of a booking. Nil fields are left
// untouched; set fields overwrite the stored value.
type BookingUpdate struct {
	Name          *string        `json:"name,omitempty"`
	Phone         *string        `json:"phone,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Service       *string        `json:"service,omitempty"`
	PreferredDate *string        `json:"preferredDate,omitempty"`
	PreferredTime *string        `json:"preferredTime,omitempty"`
	Message       *string        `json:"message,omitempty"`
	Status        *BookingStatus `json:"status,omitempty"`
}

// Validate validates the update input.
func (u *BookingUpdate) Validate() error {
	if u.Status != nil && !u.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (u *BookingUpdate) apply(b *ServiceBooking) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Phone != nil {
		b.Phone = *u.Phone
	}
	if u.Email != nil {
		b.Email = *u.Email
	}
	if u.Service != nil {
		b.Service = *u.Service
	}
	if u.PreferredDate != nil {
		b.PreferredDate = *u.PreferredDate
	}
	if u.PreferredTime != nil {
		b.PreferredTime = *u.PreferredTime
	}
	if u.Message != nil {
		b.Message = *u.Message
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
}
