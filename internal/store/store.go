package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serenaspa/massoterapia-platform/internal/observability/metrics"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// Store owns the four record collections for the lifetime of the process and
// mirrors every change into its Backend. It is the only writer: handlers get
// a reference from the composition root and never touch the slices directly.
//
// Persistence is best-effort. A failed slot write is logged and counted, but
// the in-memory state stays authoritative for the rest of the session.
type Store struct {
	mu       sync.RWMutex
	leads    []WhatsAppLead
	contacts []ContactForm
	bookings []ServiceBooking
	clients  []Client

	backend Backend
	metrics *metrics.StoreMetrics
	logger  *logging.Logger

	now   func() time.Time
	newID func() string
}

// New creates a store bound to a persistence backend. Call Load before
// serving traffic.
func New(backend Backend, m *metrics.StoreMetrics, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend: backend,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Snapshot is a point-in-time copy of all four collections.
type Snapshot struct {
	WhatsAppLeads   []WhatsAppLead
	ContactForms    []ContactForm
	ServiceBookings []ServiceBooking
	Clients         []Client
}

// Load hydrates the collections from the backend, once, at startup. A slot
// that was never written loads as empty; a slot that fails to read or parse
// fails closed to empty without aborting startup. When every slot is absent
// and seedIfEmpty is set, the canonical demo dataset is loaded so the admin
// screens are not blank on first run. Existing data is never overwritten.
func (s *Store) Load(ctx context.Context, seedIfEmpty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	missing := 0
	s.leads = loadSlot[WhatsAppLead](ctx, s.backend, SlotWhatsAppLeads, s.logger, &missing)
	s.contacts = loadSlot[ContactForm](ctx, s.backend, SlotContactForms, s.logger, &missing)
	s.bookings = loadSlot[ServiceBooking](ctx, s.backend, SlotServiceBookings, s.logger, &missing)
	s.clients = loadSlot[Client](ctx, s.backend, SlotClients, s.logger, &missing)

	if missing == 4 && seedIfEmpty {
		s.seedLocked()
		s.logger.Info("store: seeded demo dataset",
			"leads", len(s.leads),
			"contacts", len(s.contacts),
			"bookings", len(s.bookings),
			"clients", len(s.clients),
		)
	}

	// The original writes every slot back right after loading; keep that so
	// a fresh (or seeded) run immediately materializes all four slots.
	s.persistLocked(ctx, SlotWhatsAppLeads)
	s.persistLocked(ctx, SlotContactForms)
	s.persistLocked(ctx, SlotServiceBookings)
	s.persistLocked(ctx, SlotClients)

	s.logger.Info("store: loaded",
		"leads", len(s.leads),
		"contacts", len(s.contacts),
		"bookings", len(s.bookings),
		"clients", len(s.clients),
	)
}

// loadSlot reads one collection. Only a never-written slot counts as missing;
// read or parse failures yield an empty collection without bumping the
// counter, so a flaky backend can never trigger seeding over real data.
func loadSlot[T any](ctx context.Context, b Backend, slot string, logger *logging.Logger, missing *int) []T {
	data, err := b.Read(ctx, slot)
	if errors.Is(err, ErrSlotMissing) {
		*missing++
		return nil
	}
	if err != nil {
		logger.Error("store: failed to read slot", "slot", slot, "error", err)
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("store: malformed slot data, starting empty", "slot", slot, "error", err)
		return nil
	}
	return records
}

// AddWhatsAppLead captures a lead from the WhatsApp flow, newest first.
func (s *Store) AddWhatsAppLead(ctx context.Context, req *NewWhatsAppLead) (*WhatsAppLead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lead := WhatsAppLead{
		ID:        s.newID(),
		Name:      req.Name,
		WhatsApp:  req.WhatsApp,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.leads = append([]WhatsAppLead{lead}, s.leads...)
	s.mu.Unlock()

	s.metrics.ObserveMutation(SlotWhatsAppLeads, "add")
	s.persist(ctx, SlotWhatsAppLeads)
	return &lead, nil
}

// AddContactForm captures a contact form submission, newest first.
func (s *Store) AddContactForm(ctx context.Context, req *NewContactForm) (*ContactForm, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	form := ContactForm{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.contacts = append([]ContactForm{form}, s.contacts...)
	s.mu.Unlock()

	s.metrics.ObserveMutation(SlotContactForms, "add")
	s.persist(ctx, SlotContactForms)
	return &form, nil
}

// AddServiceBooking records an appointment request. Status always starts as
// Agendado regardless of the input; only UpdateServiceBooking moves it.
func (s *Store) AddServiceBooking(ctx context.Context, req *NewServiceBooking) (*ServiceBooking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	booking := ServiceBooking{
		ID:            s.newID(),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Service:       req.Service,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Message:       req.Message,
		Status:        StatusScheduled,
		CreatedAt:     s.now().UTC(),
	}
	s.mu.Lock()
	s.bookings = append([]ServiceBooking{booking}, s.bookings...)
	s.mu.Unlock()

	s.metrics.ObserveMutation(SlotServiceBookings, "add")
	s.persist(ctx, SlotServiceBookings)
	return &booking, nil
}

// AddClient registers a client, newest first.
func (s *Store) AddClient(ctx context.Context, req *NewClient) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	client := Client{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		WhatsApp:  req.WhatsApp,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Notes:     req.Notes,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.clients = append([]Client{client}, s.clients...)
	s.mu.Unlock()

	s.metrics.ObserveMutation(SlotClients, "add")
	s.persist(ctx, SlotClients)
	return &client, nil
}

// UpdateServiceBooking merges the set fields of updates into the booking with
// the given id, leaving every other record untouched. An unknown id is not an
// error: the collection stays as it was, a warning is logged, and ok is
// false so callers can report not-found to their own clients.
func (s *Store) UpdateServiceBooking(ctx context.Context, id string, updates *BookingUpdate) (*ServiceBooking, bool, error) {
	if err := updates.Validate(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	var updated *ServiceBooking
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			updates.apply(&s.bookings[i])
			cp := s.bookings[i]
			updated = &cp
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		s.logger.Warn("store: update for unknown booking id", "id", id)
		return nil, false, nil
	}

	s.metrics.ObserveMutation(SlotServiceBookings, "update")
	s.persist(ctx, SlotServiceBookings)
	return updated, true, nil
}

// WhatsAppLeads returns a copy of the lead collection, newest first.
func (s *Store) WhatsAppLeads() []WhatsAppLead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]WhatsAppLead(nil), s.leads...)
}

// ContactForms returns a copy of the contact form collection, newest first.
func (s *Store) ContactForms() []ContactForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ContactForm(nil), s.contacts...)
}

// ServiceBookings returns a copy of the booking collection, newest first.
func (s *Store) ServiceBookings() []ServiceBooking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ServiceBooking(nil), s.bookings...)
}

// Clients returns a copy of the client collection, newest first.
func (s *Store) Clients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Client(nil), s.clients...)
}

// WhatsAppLeadByID looks up a lead.
func (s *Store) WhatsAppLeadByID(id string) (*WhatsAppLead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			cp := s.leads[i]
			return &cp, true
		}
	}
	return nil, false
}

// Snapshot returns a copy of all four collections for report generation.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		WhatsAppLeads:   append([]WhatsAppLead(nil), s.leads...),
		ContactForms:    append([]ContactForm(nil), s.contacts...),
		ServiceBookings: append([]ServiceBooking(nil), s.bookings...),
		Clients:         append([]Client(nil), s.clients...),
	}
}

func (s *Store) persist(ctx context.Context, slot string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.persistLocked(ctx, slot)
}

// persistLocked serializes one collection into its slot. Callers hold at
// least the read lock.
func (s *Store) persistLocked(ctx context.Context, slot string) {
	if s.backend == nil {
		return
	}

	var (
		data []byte
		err  error
	)
	switch slot {
	case SlotWhatsAppLeads:
		data, err = json.Marshal(emptyAsArray(s.leads))
	case SlotContactForms:
		data, err = json.Marshal(emptyAsArray(s.contacts))
	case SlotServiceBookings:
		data, err = json.Marshal(emptyAsArray(s.bookings))
	case SlotClients:
		data, err = json.Marshal(emptyAsArray(s.clients))
	}
	if err != nil {
		s.metrics.ObservePersistFailure(slot)
		s.logger.Error("store: failed to marshal slot", "slot", slot, "error", err)
		return
	}

	if err := s.backend.Write(ctx, slot, data); err != nil {
		s.metrics.ObservePersistFailure(slot)
		s.logger.Error("store: failed to persist slot", "slot", slot, "error", err)
	}
}

// emptyAsArray keeps a nil collection serializing as [] instead of null.
func emptyAsArray[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
