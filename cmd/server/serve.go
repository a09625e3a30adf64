package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	customerhandler "customercore/internal/customer/handler"
	customermetrics "customercore/internal/customer/metrics"
	customerservice "customercore/internal/customer/service"
	customermemory "customercore/internal/customer/store/memory"
	customerpostgres "customercore/internal/customer/store/postgres"
	"customercore/internal/platform/config"
	"customercore/internal/platform/httpserver"
	"customercore/internal/platform/kafka"
	"customercore/internal/platform/logger"
	"customercore/internal/platform/metrics"
	"customercore/internal/platform/postgres"
	"customercore/internal/platform/redis"
	schemahandler "customercore/internal/schema/handler"
	schemaservice "customercore/internal/schema/service"
	schemamemory "customercore/internal/schema/store/memory"
	schemapostgres "customercore/internal/schema/store/postgres"
	"customercore/internal/schema/validator"
	taskhandler "customercore/internal/task/handler"
	taskservice "customercore/internal/task/service"
	taskmemory "customercore/internal/task/store/memory"
	taskpostgres "customercore/internal/task/store/postgres"
	"customercore/pkg/platform/audit"
	"customercore/pkg/platform/audit/outbox"
	"customercore/pkg/platform/audit/publisher"
	auditmemory "customercore/pkg/platform/audit/store/memory"
	auditpostgres "customercore/pkg/platform/audit/store/postgres"
	"customercore/pkg/platform/httputil"
	"customercore/pkg/platform/middleware/auth"
	"customercore/pkg/platform/middleware/metadata"
	"customercore/pkg/platform/middleware/request"
	"customercore/pkg/platform/middleware/requesttime"
	txcontext "customercore/pkg/platform/tx"
)

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the event outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger.New(cfg.Log))
		},
	}
}

// customerStore is what both the customer service and the schema registry's
// usage check need from customer storage.
type customerStore interface {
	customerservice.Store
	schemaservice.ValueUsage
}

type catalogStore interface {
	schemaservice.Store
	validator.CatalogReader
}

// backends is one storage flavour: PostgreSQL when a database URL is set,
// in-memory otherwise.
type backends struct {
	db          *sql.DB
	tx          txcontext.Runner
	catalogs    catalogStore
	definitions taskservice.DefinitionStore
	instances   taskservice.InstanceStore
	customers   customerStore
	commands    customerservice.CommandStore
	cards       customerservice.IdentificationStore
	audit       audit.Store
	outbox      outbox.Source
}

func openBackends(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backends, error) {
	if cfg.Database.URL == "" {
		log.WarnContext(ctx, "no database configured, using in-memory stores")
		definitions := taskmemory.NewDefinitionStore()
		return &backends{
			tx:          txcontext.NewMemoryRunner(),
			catalogs:    schemamemory.New(),
			definitions: definitions,
			instances:   taskmemory.NewInstanceStore(definitions),
			customers:   customermemory.NewCustomerStore(),
			commands:    customermemory.NewCommandStore(),
			cards:       customermemory.NewIdentificationStore(),
			audit:       auditmemory.NewInMemoryStore(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	auditStore := auditpostgres.New(db)
	return &backends{
		db:          db,
		tx:          txcontext.NewPostgresRunner(db),
		catalogs:    schemapostgres.New(db),
		definitions: taskpostgres.NewDefinitionStore(db),
		instances:   taskpostgres.NewInstanceStore(db),
		customers:   customerpostgres.NewCustomerStore(db),
		commands:    customerpostgres.NewCommandStore(db),
		cards:       customerpostgres.NewIdentificationStore(db),
		audit:       auditStore,
		outbox:      auditStore,
	}, nil
}

func (b *backends) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	// The PostgreSQL audit store writes into the caller's transaction, so it
	// must be synchronous. The in-memory store can take a buffer.
	pubOpts := []publisher.Option{publisher.WithLogger(log)}
	if b.db == nil {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(1024))
	}
	auditPublisher := publisher.NewPublisher(b.audit, pubOpts...)
	defer auditPublisher.Close()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	router := newRouter(cfg, log, prometheus.DefaultRegisterer, b, redisClient,
		newHandlers(b, log, prometheus.DefaultRegisterer, auditPublisher)...)
	srv := httpserver.New(cfg.HTTP, router)

	sender, closeSender, err := newSender(ctx, cfg, log, redisClient)
	if err != nil {
		return err
	}
	defer closeSender()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting customercore", "addr", cfg.HTTP.Addr)
		return httpserver.Run(gctx, srv, cfg.HTTP)
	})

	switch {
	case b.outbox == nil:
		log.InfoContext(ctx, "outbox relay disabled without a database")
	case sender == nil:
		log.InfoContext(ctx, "outbox relay disabled, no kafka brokers or redis stream configured")
	default:
		relay := outbox.NewRelay(b.outbox, sender, log,
			outbox.WithInterval(cfg.Outbox.PollInterval),
			outbox.WithBatchSize(cfg.Outbox.BatchSize),
		)
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.InfoContext(ctx, "customercore stopped")
	return nil
}

// newSender builds the outbox sender from whichever sinks are configured.
// Both sinks together fan out to each in turn.
func newSender(ctx context.Context, cfg *config.Config, log *slog.Logger, redisClient *redis.Client) (outbox.Sender, func(), error) {
	var senders fanout
	closeFn := func() {}

	client, err := kafka.NewClient(ctx, cfg.Kafka)
	if err != nil {
		return nil, closeFn, err
	}
	if client != nil {
		closeFn = client.Close
		if err := kafka.EnsureTopic(ctx, client, cfg.Kafka, log); err != nil {
			client.Close()
			return nil, func() {}, err
		}
		senders = append(senders, kafka.NewSender(client, cfg.Kafka.Topic))
	}
	if redisClient != nil {
		senders = append(senders, redis.NewStreamSender(redisClient, cfg.Redis.Stream, cfg.Redis.MaxLen))
	}

	switch len(senders) {
	case 0:
		return nil, closeFn, nil
	case 1:
		return senders[0], closeFn, nil
	default:
		return senders, closeFn, nil
	}
}

type fanout []outbox.Sender

func (f fanout) Send(ctx context.Context, entry outbox.Entry) error {
	for _, s := range f {
		if err := s.Send(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

type registrar interface {
	Register(r chi.Router)
}

// newHandlers wires services onto the backends. The customer service drives
// the task ledger, and the schema registry checks usage against customer values.
func newHandlers(b *backends, log *slog.Logger, reg prometheus.Registerer, pub *publisher.Publisher) []registrar {
	schemaSvc := schemaservice.New(b.catalogs, b.customers, b.tx,
		schemaservice.WithLogger(log),
		schemaservice.WithAuditPublisher(pub),
	)
	taskSvc := taskservice.New(b.definitions, b.instances, b.tx,
		taskservice.WithLogger(log),
		taskservice.WithAuditPublisher(pub),
	)
	customerSvc := customerservice.New(b.customers, b.commands, b.cards, validator.New(b.catalogs), taskSvc, b.tx,
		customerservice.WithLogger(log),
		customerservice.WithAuditPublisher(pub),
		customerservice.WithMetrics(customermetrics.New(reg)),
	)
	return []registrar{
		schemahandler.New(schemaSvc, log),
		taskhandler.New(taskSvc, log),
		customerhandler.New(customerSvc, log),
	}
}

func newRouter(cfg *config.Config, log *slog.Logger, reg prometheus.Registerer, b *backends, redisClient *redis.Client,
	handlers ...registrar) http.Handler {
	httpMetrics := metrics.NewHTTP(reg)
	tokens := auth.NewTokenService(cfg.Auth.SigningKey, cfg.Auth.Issuer)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(metadata.ClientIP)
	r.Use(requesttime.Middleware)
	r.Use(httpMetrics.Middleware)
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
	}

	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if b.db != nil {
			if err := b.db.PingContext(ctx); err != nil {
				status["database"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				status["redis"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		httputil.WriteJSON(w, code, status)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireActor(tokens, log))
		for _, h := range handlers {
			h.Register(r)
		}
	})
	return r
}
