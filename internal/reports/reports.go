// Package reports derives the back office's canned report views from store
// snapshots. Every function is pure: it reads the snapshot, never the store,
// and recomputes from scratch on each call — input sizes are small and
// recompute-on-demand keeps correctness trivial to check.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/serenaspa/massoterapia-platform/internal/catalog"
	"github.com/serenaspa/massoterapia-platform/internal/store"
)

// Row is one label/value line. Value is an int for plain counts and a
// pre-formatted string otherwise; the order of rows drives the on-screen and
// printed layout, so it is part of the contract.
type Row struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Report is a named, ordered list of rows.
type Report struct {
	Title string `json:"title"`
	Data  []Row  `json:"data"`
}

// Report type names accepted by Generate.
const (
	TypeAppointments = "appointments"
	TypeRevenue      = "revenue"
	TypeClients      = "clients"
	TypeServices     = "services"
	TypeSchedule     = "schedule"
	TypeComplete     = "complete"
)

// monthlyGoal is the fixed monthly revenue target in R$.
const monthlyGoal = 15000.0

// Generate builds the named report over the snapshot with records at or
// after cutoff. Unknown report types yield nil, not an error; the caller
// decides how to surface that.
func Generate(reportType string, snap store.Snapshot, cutoff time.Time) *Report {
	switch reportType {
	case TypeAppointments:
		r := Appointments(snap.ServiceBookings, cutoff)
		return &r
	case TypeRevenue:
		r := Revenue(snap.ServiceBookings, cutoff)
		return &r
	case TypeClients:
		r := Clients(snap, cutoff)
		return &r
	case TypeServices:
		r := Services(snap.ServiceBookings, cutoff)
		return &r
	case TypeSchedule:
		r := Schedule(snap.ServiceBookings)
		return &r
	case TypeComplete:
		r := Complete(snap, cutoff)
		return &r
	default:
		return nil
	}
}

func inWindow(createdAt, cutoff time.Time) bool {
	return !createdAt.Before(cutoff)
}

// Appointments counts in-window bookings per status. Every status emits a
// row, zero or not, in the fixed display order.
func Appointments(bookings []store.ServiceBooking, cutoff time.Time) Report {
	total := 0
	counts := map[store.BookingStatus]int{}
	for _, b := range bookings {
		if inWindow(b.CreatedAt, cutoff) {
			total++
			counts[b.Status]++
		}
	}
	return Report{
		Title: "Relatório de Agendamentos",
		Data: []Row{
			{Label: "Total de Agendamentos", Value: total},
			{Label: "Agendados", Value: counts[store.StatusScheduled]},
			{Label: "Confirmados", Value: counts[store.StatusConfirmed]},
			{Label: "Em Andamento", Value: counts[store.StatusInProgress]},
			{Label: "Concluídos", Value: counts[store.StatusCompleted]},
			{Label: "Cancelados", Value: counts[store.StatusCancelled]},
		},
	}
}

// Revenue sums catalog prices over completed in-window bookings. Bookings
// whose service label is not in the catalog contribute zero. The average
// ticket divides by max(count, 1) so an empty window stays at R$ 0.00.
func Revenue(bookings []store.ServiceBooking, cutoff time.Time) Report {
	total := 0.0
	completed := 0
	for _, b := range bookings {
		if b.Status == store.StatusCompleted && inWindow(b.CreatedAt, cutoff) {
			completed++
			total += float64(catalog.PriceFor(b.Service))
		}
	}
	divisor := completed
	if divisor < 1 {
		divisor = 1
	}
	return Report{
		Title: "Relatório de Faturamento",
		Data: []Row{
			{Label: "Faturamento Total", Value: fmt.Sprintf("R$ %.2f", total)},
			{Label: "Serviços Concluídos", Value: completed},
			{Label: "Ticket Médio", Value: fmt.Sprintf("R$ %.2f", total/float64(divisor))},
			{Label: "Meta Mensal", Value: "R$ 15.000,00"},
			{Label: "Atingimento", Value: fmt.Sprintf("%.1f%%", total/monthlyGoal*100)},
		},
	}
}

// Clients reports client totals. The new-clients count is window-filtered;
// the most-frequent customer is ranked over all bookings by customer name,
// ties resolved by first appearance.
func Clients(snap store.Snapshot, cutoff time.Time) Report {
	newClients := 0
	for _, c := range snap.Clients {
		if inWindow(c.CreatedAt, cutoff) {
			newClients++
		}
	}

	names, _ := countBy(snap.ServiceBookings, func(b store.ServiceBooking) string { return b.Name })
	topClient := "N/A"
	if len(names) > 0 {
		topClient = names[0]
	}

	return Report{
		Title: "Relatório de Clientes",
		Data: []Row{
			{Label: "Total de Clientes", Value: len(snap.Clients)},
			{Label: "Novos Clientes (período)", Value: newClients},
			{Label: "Cliente Mais Frequente", Value: topClient},
			{Label: "Leads WhatsApp", Value: len(snap.WhatsAppLeads)},
			{Label: "Contatos Site", Value: len(snap.ContactForms)},
		},
	}
}

// Services ranks in-window bookings by short service name, most requested
// first, one row per distinct service.
func Services(bookings []store.ServiceBooking, cutoff time.Time) Report {
	var recent []store.ServiceBooking
	for _, b := range bookings {
		if inWindow(b.CreatedAt, cutoff) {
			recent = append(recent, b)
		}
	}

	names, counts := countBy(recent, func(b store.ServiceBooking) string { return catalog.ShortName(b.Service) })
	return Report{
		Title: "Serviços Mais Procurados",
		Data:  rankedRows(names, counts, len(names)),
	}
}

// Schedule ranks the five most requested time slots across all bookings,
// with no window filter: peak hours are a property of overall demand.
func Schedule(bookings []store.ServiceBooking) Report {
	names, counts := countBy(bookings, func(b store.ServiceBooking) string { return b.PreferredTime })
	return Report{
		Title: "Horários de Pico",
		Data:  rankedRows(names, counts, 5),
	}
}

// Complete concatenates the first two rows each of the appointments, revenue
// and clients reports, in that order.
func Complete(snap store.Snapshot, cutoff time.Time) Report {
	appointments := Appointments(snap.ServiceBookings, cutoff)
	revenue := Revenue(snap.ServiceBookings, cutoff)
	clients := Clients(snap, cutoff)

	data := make([]Row, 0, 6)
	data = append(data, appointments.Data[:2]...)
	data = append(data, revenue.Data[:2]...)
	data = append(data, clients.Data[:2]...)

	return Report{
		Title: "Relatório Completo",
		Data:  data,
	}
}

// countBy groups records by key and returns the keys sorted by descending
// count. The sort is stable over first-appearance order, which is the
// documented tie-break.
func countBy(bookings []store.ServiceBooking, key func(store.ServiceBooking) string) ([]string, map[string]int) {
	counts := map[string]int{}
	var order []string
	for _, b := range bookings {
		k := key(b)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order, counts
}

// rankedRows renders up to limit ranked rows as "<rank>º <name>" →
// "<count> agendamentos".
func rankedRows(names []string, counts map[string]int, limit int) []Row {
	if len(names) < limit {
		limit = len(names)
	}
	rows := make([]Row, 0, limit)
	for i, name := range names[:limit] {
		rows = append(rows, Row{
			Label: fmt.Sprintf("%dº %s", i+1, name),
			Value: fmt.Sprintf("%d agendamentos", counts[name]),
		})
	}
	return rows
}
