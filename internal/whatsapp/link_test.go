package whatsapp

import "testing"

func TestLinkStripsFormatting(t *testing.T) {
	got := Link("(11) 99999-9999", "Olá")
	want := "https://wa.me/11999999999?text=Ol%C3%A1"
	if got != want {
		t.Errorf("Link = %q, want %q", got, want)
	}
}

func TestLinkWithCountryCode(t *testing.T) {
	got := Link("5511999999999", DefaultMessage)
	want := "https://wa.me/5511999999999?text=Ol%C3%A1%21+Gostaria+de+agendar+uma+massagem."
	if got != want {
		t.Errorf("Link = %q, want %q", got, want)
	}
}

func TestLeadMessage(t *testing.T) {
	got := LeadMessage("Maria", "Quero agendar uma drenagem.")
	want := "Olá! Meu nome é Maria. Quero agendar uma drenagem."
	if got != want {
		t.Errorf("LeadMessage = %q, want %q", got, want)
	}
}
