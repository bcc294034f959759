// Package notify emails the clinic team when new leads, bookings and contact
// requests come in. Notifications are best effort: failures are logged, never
// surfaced to the visitor.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// sendTimeout bounds each background notification attempt.
const sendTimeout = 10 * time.Second

// Service sends operator notifications for incoming records.
type Service struct {
	email      EmailSender
	recipients []string
	clinicName string
	logger     *logging.Logger
}

// NewService creates a notification service. A nil email sender or an empty
// recipient list turns every notification into a no-op.
func NewService(email EmailSender, recipients []string, clinicName string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:      email,
		recipients: recipients,
		clinicName: clinicName,
		logger:     logger,
	}
}

// NotifyNewLead emails the team about a captured WhatsApp lead.
func (s *Service) NotifyNewLead(ctx context.Context, lead *store.WhatsAppLead) error {
	subject := fmt.Sprintf("Novo lead WhatsApp - %s", lead.Name)
	body := fmt.Sprintf(`Um novo lead chegou pelo site!

Nome: %s
WhatsApp: %s
Mensagem: %s
Recebido em: %s

— %s`, lead.Name, lead.WhatsApp, lead.Message, lead.CreatedAt.Format("02/01/2006 15:04"), s.clinicName)

	return s.sendAll(ctx, subject, body)
}

// NotifyNewBooking emails the team about a new booking request.
func (s *Service) NotifyNewBooking(ctx context.Context, booking *store.ServiceBooking) error {
	subject := fmt.Sprintf("Novo agendamento - %s", booking.Name)
	body := fmt.Sprintf(`Um novo agendamento foi solicitado!

Nome: %s
Telefone: %s
E-mail: %s
Serviço: %s
Data preferida: %s às %s
Observações: %s

— %s`, booking.Name, booking.Phone, booking.Email, booking.Service,
		booking.PreferredDate, booking.PreferredTime, booking.Message, s.clinicName)

	return s.sendAll(ctx, subject, body)
}

// NotifyNewContact emails the team about a contact form submission.
func (s *Service) NotifyNewContact(ctx context.Context, contact *store.ContactForm) error {
	subject := fmt.Sprintf("Novo contato pelo site - %s", contact.Name)
	body := fmt.Sprintf(`Uma nova mensagem chegou pelo formulário de contato!

Nome: %s
E-mail: %s
Telefone: %s
Mensagem: %s

— %s`, contact.Name, contact.Email, contact.Phone, contact.Message, s.clinicName)

	return s.sendAll(ctx, subject, body)
}

func (s *Service) sendAll(ctx context.Context, subject, body string) error {
	if s.email == nil || len(s.recipients) == 0 {
		return nil
	}

	var errs []error
	for _, recipient := range s.recipients {
		msg := EmailMessage{
			To:      recipient,
			Subject: subject,
			Body:    body,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("notify: failed to send email", "error", err, "to", recipient)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %d notification(s) failed", len(errs))
	}
	return nil
}

// NotifyLeadAsync fires NotifyNewLead in the background, detached from the
// request lifecycle.
func (s *Service) NotifyLeadAsync(lead *store.WhatsAppLead) {
	go s.async(func(ctx context.Context) error { return s.NotifyNewLead(ctx, lead) })
}

// NotifyBookingAsync fires NotifyNewBooking in the background.
func (s *Service) NotifyBookingAsync(booking *store.ServiceBooking) {
	go s.async(func(ctx context.Context) error { return s.NotifyNewBooking(ctx, booking) })
}

// NotifyContactAsync fires NotifyNewContact in the background.
func (s *Service) NotifyContactAsync(contact *store.ContactForm) {
	go s.async(func(ctx context.Context) error { return s.NotifyNewContact(ctx, contact) })
}

func (s *Service) async(fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		s.logger.Error("notify: background notification failed", "error", err)
	}
}
