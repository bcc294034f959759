package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisBackendRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	backend := NewRedisBackend(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	if _, err := backend.Read(ctx, SlotClients); !errors.Is(err, ErrSlotMissing) {
		t.Fatalf("unwritten slot: got %v, want ErrSlotMissing", err)
	}

	payload := []byte(`[{"id":"c1"}]`)
	if err := backend.Write(ctx, SlotClients, payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := backend.Read(ctx, SlotClients)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read = %s, want %s", got, payload)
	}

	// Slots are independent keys.
	if _, err := backend.Read(ctx, SlotWhatsAppLeads); !errors.Is(err, ErrSlotMissing) {
		t.Errorf("sibling slot must stay missing, got %v", err)
	}
}

func TestRedisBackendKeyNamespacing(t *testing.T) {
	mr := miniredis.RunT(t)
	backend := NewRedisBackend(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	if err := backend.Write(context.Background(), SlotContactForms, []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !mr.Exists("backoffice:data:contactForms") {
		t.Errorf("expected namespaced key backoffice:data:contactForms, have keys %v", mr.Keys())
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	ctx := context.Background()

	if _, err := backend.Read(ctx, SlotServiceBookings); !errors.Is(err, ErrSlotMissing) {
		t.Fatalf("unwritten slot: got %v, want ErrSlotMissing", err)
	}

	payload := []byte(`[{"id":"b1"}]`)
	if err := backend.Write(ctx, SlotServiceBookings, payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := backend.Read(ctx, SlotServiceBookings)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read = %s, want %s", got, payload)
	}
}

func TestFileBackendOverwrite(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	ctx := context.Background()

	if err := backend.Write(ctx, SlotClients, []byte(`["old"]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := backend.Write(ctx, SlotClients, []byte(`["new"]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := backend.Read(ctx, SlotClients)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `["new"]` {
		t.Errorf("Read = %s, want [\"new\"]", got)
	}
}

func TestStoreWithRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	s := New(NewRedisBackend(client), nil, nil)
	s.Load(ctx, false)
	if _, err := s.AddContactForm(ctx, &NewContactForm{Name: "Ana", Email: "ana@email.com"}); err != nil {
		t.Fatalf("AddContactForm: %v", err)
	}

	// A second store over the same Redis sees the records.
	reloaded := New(NewRedisBackend(client), nil, nil)
	reloaded.Load(ctx, true)
	contacts := reloaded.ContactForms()
	if len(contacts) != 1 || contacts[0].Name != "Ana" {
		t.Fatalf("reload from redis: %+v", contacts)
	}
}
