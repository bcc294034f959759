// Package chat backs the site's chat widget with a small rule-based
// responder: keyword rules over the visitor's message, canned Portuguese
// replies, no external service.
package chat

import (
	"fmt"
	"strings"
)

// Greeting opens every new conversation.
const Greeting = "Olá! Bem-vindo à nossa clínica de massoterapia. Como posso ajudá-lo hoje?"

// QuickReplies are the suggested prompts the widget renders under the input.
var QuickReplies = []string{
	"Quero agendar uma consulta",
	"Quais são os preços?",
	"Horário de funcionamento",
	"Localização da clínica",
}

// DefaultPhone is used when no clinic phone is configured.
const DefaultPhone = "(11) 99999-9999"

type rule struct {
	keywords []string
	reply    string
}

// Responder answers visitor messages with canned replies built around the
// clinic's contact phone.
type Responder struct {
	rules    []rule
	fallback string
}

// NewResponder builds the keyword rules with the given clinic phone; empty
// falls back to DefaultPhone.
func NewResponder(phone string) *Responder {
	if strings.TrimSpace(phone) == "" {
		phone = DefaultPhone
	}
	return &Responder{
		// Rules are checked in order; the first keyword hit wins.
		rules: []rule{
			{
				keywords: []string{"agendar", "consulta", "agendamento"},
				reply:    fmt.Sprintf("Para agendar sua consulta, você pode clicar no botão do WhatsApp ou ligar para %s. Nosso horário de atendimento é de Segunda a Sexta das 8h às 18h e Sábado das 8h às 14h.", phone),
			},
			{
				keywords: []string{"preço", "valor", "quanto custa"},
				reply:    "Nossos preços variam de acordo com o tipo de massagem: Quick Massage (30min) - R$80, Reflexologia (45min) - R$100, Massagem Relaxante (60min) - R$120, Massagem Desportiva (60min) - R$140, Drenagem Linfática (75min) - R$150, Massagem Terapêutica (90min) - R$180.",
			},
			{
				keywords: []string{"horário", "funcionamento", "aberto"},
				reply:    "Nosso horário de funcionamento é: Segunda a Sexta das 8h às 18h, Sábado das 8h às 14h. Domingo fechado.",
			},
			{
				keywords: []string{"endereço", "localização", "onde"},
				reply:    "Estamos localizados na Rua das Flores, 123 - São Paulo/SP. Você pode encontrar nossa localização no Google Maps.",
			},
		},
		fallback: fmt.Sprintf("Obrigado pela sua mensagem! Para um atendimento mais personalizado, entre em contato conosco pelo WhatsApp %s ou telefone. Nossa equipe está pronta para ajudá-lo!", phone),
	}
}

// Reply returns the canned response for a visitor message. Matching is
// case-insensitive substring search over the keyword rules; anything
// unmatched gets the generic handoff reply.
func (r *Responder) Reply(message string) string {
	m := strings.ToLower(message)
	for _, ru := range r.rules {
		for _, k := range ru.keywords {
			if strings.Contains(m, k) {
				return ru.reply
			}
		}
	}
	return r.fallback
}
