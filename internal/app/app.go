package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/crm/internal/health"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
	"github.com/vladislavdragonenkov/crm/internal/storage/postgres"
	gql "github.com/vladislavdragonenkov/crm/internal/transport/graphql"
	"github.com/vladislavdragonenkov/crm/internal/version"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// PostgresDSN пустой означает in-memory хранилище.
	PostgresDSN string
	// KafkaBrokers пустой означает работу без публикации событий.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые адреса GraphQL API и HTTP-метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// repositories собирает выбранную реализацию хранилища.
type repositories struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	uow       domain.CustomerUnitOfWork
}

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	repos, store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
	}

	// Kafka producer опционален: без брокеров мутации работают, события
	// просто не публикуются.
	var publisher domain.EventPublisher
	var kafkaProducer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			publisher = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}
	defer func() {
		if kafkaProducer == nil {
			return
		}
		if err := kafkaProducer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			logger.Info("kafka producer closed")
		}
	}()

	mutationMetrics := metrics.NewMutationMetrics()

	customers := crm.NewCustomerService(repos.customers, repos.uow, publisher, mutationMetrics, logger.WithField("layer", "customer-service"))
	products := crm.NewProductService(repos.products, publisher, mutationMetrics, logger.WithField("layer", "product-service"))
	orders := crm.NewOrderService(repos.orders, repos.customers, repos.products, publisher, mutationMetrics, logger.WithField("layer", "order-service"))

	resolver := gql.NewResolver(customers, products, orders, logger.WithField("layer", "graphql"))
	graphqlHandler, err := gql.NewHandler(resolver)
	if err != nil {
		return err
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiMux := http.NewServeMux()
	apiMux.Handle("/graphql", graphqlHandler)
	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: apiMux}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("GraphQL API слушает %s/graphql", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// initStorage выбирает реализацию хранилища: PostgreSQL при заданном DSN,
// иначе in-memory. Для PostgreSQL применяются все up-миграции.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (repositories, *postgres.Store, error) {
	if cfg.PostgresDSN == "" {
		logger.Info("postgres DSN is not set, using in-memory storage")
		customerRepo := memory.NewCustomerRepository()
		return repositories{
			customers: customerRepo,
			products:  memory.NewProductRepository(),
			orders:    memory.NewOrderRepository(),
			uow:       memory.NewCustomerUnitOfWork(customerRepo),
		}, nil, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return repositories{}, nil, err
	}
	logger.Info("postgres storage initialized")

	return repositories{
		customers: postgres.NewCustomerRepository(store),
		products:  postgres.NewProductRepository(store),
		orders:    postgres.NewOrderRepository(store),
		uow:       postgres.NewCustomerUnitOfWork(store),
	}, store, nil
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
