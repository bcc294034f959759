package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics exposes counters for domain store activity.
type StoreMetrics struct {
	mutationsTotal  *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Total domain store mutations",
		}, []string{"collection", "op"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Total failed slot writes",
		}, []string{"slot"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.mutationsTotal, m.persistFailures)
	return m
}

func (m *StoreMetrics) ObserveMutation(collection, op string) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(collection, op).Inc()
}

func (m *StoreMetrics) ObservePersistFailure(slot string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(slot).Inc()
}

// ReportMetrics counts report generations.
type ReportMetrics struct {
	generatedTotal *prometheus.CounterVec
}

func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	m := &ReportMetrics{
		generatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "reports",
			Name:      "generated_total",
			Help:      "Total report generations",
		}, []string{"report_type", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.generatedTotal)
	return m
}

func (m *ReportMetrics) ObserveGenerated(reportType, status string) {
	if m == nil {
		return
	}
	m.generatedTotal.WithLabelValues(reportType, status).Inc()
}

// ChatMetrics counts chat widget traffic.
type ChatMetrics struct {
	messagesTotal *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages handled",
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal)
	return m
}

func (m *ChatMetrics) ObserveMessage(channel string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(channel).Inc()
}
