package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/serenaspa/massoterapia-platform/internal/store"
)

// captureSender records sent messages for assertions.
type captureSender struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (c *captureSender) Send(ctx context.Context, msg EmailMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureSender) messages() []EmailMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]EmailMessage(nil), c.sent...)
}

func TestNotifyNewLead(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, []string{"recepcao@clinica.com", "gerencia@clinica.com"}, "Clínica Serena", nil)

	lead := &store.WhatsAppLead{
		Name:      "Maria Silva",
		WhatsApp:  "(11) 98765-4321",
		Message:   "Quero agendar.",
		CreatedAt: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
	if err := svc.NotifyNewLead(context.Background(), lead); err != nil {
		t.Fatalf("NotifyNewLead: %v", err)
	}

	sent := sender.messages()
	if len(sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sent))
	}
	if sent[0].To != "recepcao@clinica.com" || sent[1].To != "gerencia@clinica.com" {
		t.Errorf("recipients wrong: %+v", sent)
	}
	if !strings.Contains(sent[0].Subject, "Maria Silva") {
		t.Errorf("subject = %q", sent[0].Subject)
	}
	if !strings.Contains(sent[0].Body, "(11) 98765-4321") || !strings.Contains(sent[0].Body, "Clínica Serena") {
		t.Errorf("body = %q", sent[0].Body)
	}
}

func TestNotifyNewBookingBody(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, []string{"recepcao@clinica.com"}, "Clínica Serena", nil)

	booking := &store.ServiceBooking{
		Name:          "Patricia",
		Phone:         "(11) 96543-2109",
		Service:       "Massagem Relaxante - R$ 120 (60 min)",
		PreferredDate: "2025-06-10",
		PreferredTime: "14:00",
	}
	if err := svc.NotifyNewBooking(context.Background(), booking); err != nil {
		t.Fatalf("NotifyNewBooking: %v", err)
	}

	sent := sender.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	body := sent[0].Body
	for _, want := range []string{"Patricia", "Massagem Relaxante", "2025-06-10", "14:00"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %q", want, body)
		}
	}
}

func TestNotifyWithoutSenderIsNoOp(t *testing.T) {
	svc := NewService(nil, []string{"recepcao@clinica.com"}, "Clínica Serena", nil)
	if err := svc.NotifyNewContact(context.Background(), &store.ContactForm{Name: "Ana"}); err != nil {
		t.Errorf("nil sender must be a no-op, got %v", err)
	}

	sender := &captureSender{}
	svc = NewService(sender, nil, "Clínica Serena", nil)
	if err := svc.NotifyNewContact(context.Background(), &store.ContactForm{Name: "Ana"}); err != nil {
		t.Errorf("empty recipients must be a no-op, got %v", err)
	}
	if len(sender.messages()) != 0 {
		t.Errorf("no recipients but emails were sent")
	}
}

func TestNotifyReportsFailures(t *testing.T) {
	sender := &captureSender{err: errors.New("rate limited")}
	svc := NewService(sender, []string{"recepcao@clinica.com"}, "Clínica Serena", nil)

	err := svc.NotifyNewLead(context.Background(), &store.WhatsAppLead{Name: "Maria"})
	if err == nil {
		t.Fatalf("expected error when every send fails")
	}
}
