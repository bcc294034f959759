// Package whatsapp builds wa.me deep links for handing visitors off to the
// clinic's WhatsApp number.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultMessage pre-fills the chat when the visitor taps the floating
// WhatsApp button without filling the lead form.
const DefaultMessage = "Olá! Gostaria de agendar uma massagem."

// Link returns a https://wa.me deep link for number with message pre-filled.
// Non-digit characters in the number are stripped so formatted phone strings
// like "(11) 99999-9999" work as-is.
func Link(number, message string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits.String(), url.QueryEscape(message))
}

// LeadMessage composes the pre-filled text for a captured lead.
func LeadMessage(name, message string) string {
	return fmt.Sprintf("Olá! Meu nome é %s. %s", name, message)
}
