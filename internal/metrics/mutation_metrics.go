package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Имена операций для меток метрик.
const (
	OpCreateCustomer      = "create_customer"
	OpBulkCreateCustomers = "bulk_create_customers"
	OpCreateProduct       = "create_product"
	OpCreateOrder         = "create_order"
)

// MutationMetrics содержит метрики мутаций CRM.
// Методы безопасны для nil-receiver: метрики опциональны для writer-ов.
type MutationMetrics struct {
	// Счётчики созданных записей по типам
	customersCreated prometheus.Counter
	productsCreated  prometheus.Counter
	ordersCreated    prometheus.Counter

	// Счётчики отклонённых мутаций и ошибок пакетных записей
	mutationsRejected *prometheus.CounterVec
	bulkEntriesFailed prometheus.Counter

	// Гистограмма времени выполнения мутаций
	mutationDuration *prometheus.HistogramVec
}

// NewMutationMetrics создаёт новый экземпляр метрик мутаций.
func NewMutationMetrics() *MutationMetrics {
	return newMutationMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newMutationMetricsWithRegisterer(registerer prometheus.Registerer) *MutationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &MutationMetrics{
		customersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_customers_created_total",
			Help: "Total number of customers created",
		}),
		productsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_products_created_total",
			Help: "Total number of products created",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_orders_created_total",
			Help: "Total number of orders created",
		}),
		mutationsRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "crm_mutations_rejected_total",
			Help: "Total number of mutations rejected by validation",
		}, []string{"operation"}),
		bulkEntriesFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_bulk_entries_failed_total",
			Help: "Total number of bulk create entries rejected by validation",
		}),
		mutationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "crm_mutation_duration_seconds",
			Help:    "Duration of CRM mutations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCustomerCreated увеличивает счётчик созданных клиентов.
func (m *MutationMetrics) RecordCustomerCreated() {
	if m == nil {
		return
	}
	m.customersCreated.Inc()
}

// RecordProductCreated увеличивает счётчик созданных товаров.
func (m *MutationMetrics) RecordProductCreated() {
	if m == nil {
		return
	}
	m.productsCreated.Inc()
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *MutationMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// RecordMutationRejected увеличивает счётчик отклонённых мутаций.
func (m *MutationMetrics) RecordMutationRejected(operation string) {
	if m == nil {
		return
	}
	m.mutationsRejected.WithLabelValues(operation).Inc()
}

// RecordBulkEntryFailed увеличивает счётчик отклонённых записей пакетного создания.
func (m *MutationMetrics) RecordBulkEntryFailed() {
	if m == nil {
		return
	}
	m.bulkEntriesFailed.Inc()
}

// RecordMutationDuration записывает время выполнения мутации.
func (m *MutationMetrics) RecordMutationDuration(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.mutationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
