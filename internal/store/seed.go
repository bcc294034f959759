package store

import "time"

// seedLocked loads the canonical demo dataset so a first run shows a
// populated back office. Offsets are relative to the current time, matching
// the shape of real traffic over the previous ten days. Caller holds the
// write lock.
func (s *Store) seedLocked() {
	now := s.now().UTC()
	day := 24 * time.Hour
	date := func(offsetDays int) string {
		return now.Add(time.Duration(offsetDays) * day).Format("2006-01-02")
	}

	s.leads = []WhatsAppLead{
		{
			ID:        s.newID(),
			Name:      "Maria Silva",
			WhatsApp:  "(11) 98765-4321",
			Message:   "Olá! Gostaria de agendar uma massagem relaxante para esta semana.",
			CreatedAt: now.Add(-2 * day),
		},
		{
			ID:        s.newID(),
			Name:      "João Santos",
			WhatsApp:  "(11) 97654-3210",
			Message:   "Preciso de uma sessão de drenagem linfática. Vocês atendem aos domingos?",
			CreatedAt: now.Add(-5 * day),
		},
	}

	s.contacts = []ContactForm{
		{
			ID:        s.newID(),
			Name:      "Ana Costa",
			Email:     "ana.costa@email.com",
			Phone:     "(11) 99876-5432",
			Message:   "Gostaria de saber mais sobre os preços da massagem terapêutica e disponibilidade para a próxima semana.",
			CreatedAt: now.Add(-1 * day),
		},
		{
			ID:        s.newID(),
			Name:      "Carlos Oliveira",
			Email:     "carlos.oliveira@email.com",
			Phone:     "(11) 98765-1234",
			Message:   "Tenho problemas de coluna e gostaria de uma avaliação para massagem terapêutica.",
			CreatedAt: now.Add(-4 * day),
		},
		{
			ID:        s.newID(),
			Name:      "Fernanda Lima",
			Email:     "fernanda.lima@email.com",
			Phone:     "(11) 97531-8642",
			Message:   "Vocês fazem atendimento domiciliar? Preciso de massagem relaxante em casa.",
			CreatedAt: now.Add(-7 * day),
		},
	}

	s.bookings = []ServiceBooking{
		{
			ID:            s.newID(),
			Name:          "Patricia Rodrigues",
			Phone:         "(11) 96543-2109",
			Email:         "patricia.rodrigues@email.com",
			Service:       "Massagem Relaxante - R$ 120 (60 min)",
			PreferredDate: date(1),
			PreferredTime: "14:00",
			Message:       "Primeira vez que vou fazer massagem, estou um pouco nervosa.",
			Status:        StatusConfirmed,
			CreatedAt:     now.Add(-3 * day),
		},
		{
			ID:            s.newID(),
			Name:          "Roberto Silva",
			Phone:         "(11) 95432-1098",
			Email:         "roberto.silva@email.com",
			Service:       "Massagem Terapêutica - R$ 180 (90 min)",
			PreferredDate: date(0),
			PreferredTime: "10:00",
			Message:       "Tenho dores nas costas devido ao trabalho no escritório.",
			Status:        StatusInProgress,
			CreatedAt:     now.Add(-6 * day),
		},
		{
			ID:            s.newID(),
			Name:          "Mariana Ferreira",
			Phone:         "(11) 94321-0987",
			Email:         "mariana.ferreira@email.com",
			Service:       "Drenagem Linfática - R$ 150 (75 min)",
			PreferredDate: date(-1),
			PreferredTime: "16:30",
			Message:       "Recomendação médica para drenagem pós-cirúrgica.",
			Status:        StatusCompleted,
			CreatedAt:     now.Add(-8 * day),
		},
		{
			ID:            s.newID(),
			Name:          "Lucas Mendes",
			Phone:         "(11) 93210-9876",
			Email:         "lucas.mendes@email.com",
			Service:       "Massagem Desportiva - R$ 140 (60 min)",
			PreferredDate: date(2),
			PreferredTime: "09:00",
			Message:       "Atleta, preciso de massagem para recuperação muscular.",
			Status:        StatusScheduled,
			CreatedAt:     now.Add(-9 * day),
		},
		{
			ID:            s.newID(),
			Name:          "Juliana Alves",
			Phone:         "(11) 92109-8765",
			Email:         "juliana.alves@email.com",
			Service:       "Quick Massage - R$ 80 (30 min)",
			PreferredDate: date(3),
			PreferredTime: "15:00",
			Message:       "Pausa do trabalho, preciso relaxar rapidamente.",
			Status:        StatusConfirmed,
			CreatedAt:     now.Add(-10 * day),
		},
	}

	s.clients = []Client{
		{
			ID:        s.newID(),
			Name:      "Claudia Nascimento",
			Email:     "claudia.nascimento@email.com",
			Phone:     "(11) 91098-7654",
			WhatsApp:  "(11) 91098-7654",
			Address:   "Rua das Palmeiras, 456 - Vila Madalena, São Paulo/SP",
			BirthDate: "1985-03-15",
			Notes:     "Cliente regular, prefere massagem suave, alérgica a óleo de amendoim.",
			CreatedAt: now.Add(-2 * day),
		},
		{
			ID:        s.newID(),
			Name:      "Eduardo Pereira",
			Email:     "eduardo.pereira@email.com",
			Phone:     "(11) 90987-6543",
			WhatsApp:  "(11) 90987-6543",
			Address:   "Av. Paulista, 1000 - Bela Vista, São Paulo/SP",
			BirthDate: "1978-11-28",
			Notes:     "Executivo, alta tensão muscular, sessões semanais recomendadas.",
			CreatedAt: now.Add(-5 * day),
		},
		{
			ID:        s.newID(),
			Name:      "Isabela Ramos",
			Email:     "isabela.ramos@email.com",
			Phone:     "(11) 98876-5432",
			WhatsApp:  "(11) 98876-5432",
			Address:   "Rua Augusta, 2500 - Jardins, São Paulo/SP",
			BirthDate: "1992-07-10",
			Notes:     "Gestante, 7º mês, necessita massagem específica para gestantes.",
			CreatedAt: now.Add(-8 * day),
		},
	}
}
