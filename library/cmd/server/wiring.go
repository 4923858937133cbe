package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library/api"
	"github.com/AntonStoeckl/library-circulation-go/library/checkout"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelpayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/initiatepayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/reconcilepayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnborrowing"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowingdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowings"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/paymentdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/payments"
	"github.com/AntonStoeckl/library-circulation-go/library/notifier"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
)

const (
	instrumentationName   = "library-circulation"
	notificationQueueSize = 256
)

// observability is nil-safe: without an OTel endpoint all collectors stay nil and nothing is instrumented.
type observability struct {
	providers        *config.ObservabilityProviders
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
	contextualLogger shell.ContextualLogger
}

func setupObservability(ctx context.Context, cfg config.AppConfig) (*observability, error) {
	if cfg.OTelEndpoint == "" {
		return &observability{}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg.OTelEndpoint, version)
	if err != nil {
		return nil, err
	}

	return &observability{
		providers:        providers,
		metrics:          oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracing:          oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
		contextualLogger: oteladapters.NewSlogBridgeLogger(instrumentationName),
	}, nil
}

func (o *observability) shutdown(logger *slog.Logger) {
	if o.providers == nil {
		return
	}

	if err := o.providers.Shutdown(); err != nil {
		logger.Warn("observability shutdown failed", "error", err.Error())
	}
}

func (o *observability) storeOptions(logger *slog.Logger) []postgresengine.Option {
	options := []postgresengine.Option{postgresengine.WithLogger(logger)}

	if o.metrics != nil {
		options = append(options, postgresengine.WithMetrics(o.metrics))
	}

	if o.tracing != nil {
		options = append(options, postgresengine.WithTracing(o.tracing))
	}

	if o.contextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(o.contextualLogger))
	}

	return options
}

func openStore(
	ctx context.Context,
	cfg config.AppConfig,
	logger *slog.Logger,
	obs *observability,
) (*postgresengine.Store, func(), error) {

	options := obs.storeOptions(logger)

	switch cfg.DBAdapter {
	case config.AdapterSQLDB:
		db, err := config.PostgresSQLDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)

		return store, func() { _ = db.Close() }, err

	case config.AdapterSQLXDB:
		db, err := config.PostgresSQLX(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)

		return store, func() { _ = db.Close() }, err

	default:
		primary, err := newPGXPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		if cfg.DatabaseReplicaURL == "" {
			store, storeErr := postgresengine.NewStoreFromPGXPool(primary, options...)
			return store, primary.Close, storeErr
		}

		replica, err := newPGXPool(ctx, cfg.DatabaseReplicaURL)
		if err != nil {
			primary.Close()
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)

		return store, func() { primary.Close(); replica.Close() }, err
	}
}

func newPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func newCheckoutProvider(cfg config.AppConfig, logger *slog.Logger) shell.CheckoutProvider {
	return checkout.NewBreakerProvider(
		checkout.NewClient(cfg.CheckoutAPIURL, cfg.CheckoutSecretKey),
		checkout.WithStateChangeLogger(logger),
	)
}

func startNotifier(
	cfg config.AppConfig,
	logger *slog.Logger,
	obs *observability,
) (*notifier.Dispatcher, func()) {

	var sender notifier.Sender = notifier.NewLogSender(logger)
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		sender = notifier.NewTelegramSender(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID)
	}

	var queue notifier.Queue = notifier.NewChannelQueue(notificationQueueSize)

	closeQueue := func() {}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		queue = notifier.NewRedisQueue(client)
		closeQueue = func() { _ = client.Close() }
	}

	options := []notifier.DispatcherOption{
		notifier.WithWorkers(cfg.NotifierWorkers),
		notifier.WithLogger(logger),
	}

	if obs.metrics != nil {
		options = append(options, notifier.WithMetrics(obs.metrics))
	}

	dispatcher := notifier.NewDispatcher(queue, sender, options...)
	dispatcher.Start()

	return dispatcher, closeQueue
}

func buildHandlers(
	store *postgresengine.Store,
	checkoutProvider shell.CheckoutProvider,
	dispatcher shell.Notifier,
	cfg config.AppConfig,
	logger *slog.Logger,
	obs *observability,
) (api.Handlers, error) {

	urls := shell.CheckoutURLs{SuccessTemplate: cfg.CheckoutSuccessURL, Cancel: cfg.CheckoutCancelURL}

	var (
		h   api.Handlers
		err error
	)

	if h.AddBook, err = observeCommand[addbook.Command, core.Book](
		addbook.NewCommandHandler(store), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.BorrowBook, err = observeCommand[borrowbook.Command, borrowbook.Result](
		borrowbook.NewCommandHandler(store, borrowbook.WithNotifier(dispatcher)), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.ReturnBorrowing, err = observeCommand[returnborrowing.Command, returnborrowing.Result](
		returnborrowing.NewCommandHandler(
			store,
			checkoutProvider,
			urls,
			returnborrowing.WithNotifier(dispatcher),
			returnborrowing.WithLogger(logger),
		),
		logger,
		obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.InitiatePayment, err = observeCommand[initiatepayment.Command, initiatepayment.Result](
		initiatepayment.NewCommandHandler(store, checkoutProvider, urls, initiatepayment.WithNotifier(dispatcher)), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.ReconcilePayment, err = observeCommand[reconcilepayment.Command, core.PaymentOutcome](
		reconcilepayment.NewCommandHandler(store, checkoutProvider), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.CancelPayment, err = observeCommand[cancelpayment.Command, cancelpayment.Result](
		cancelpayment.NewCommandHandler(), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.Borrowings, err = observeQuery[borrowings.Query, borrowings.Borrowings](
		borrowings.NewQueryHandler(store), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.BorrowingDetail, err = observeQuery[borrowingdetail.Query, core.Borrowing](
		borrowingdetail.NewQueryHandler(store), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.Payments, err = observeQuery[payments.Query, payments.Payments](
		payments.NewQueryHandler(store), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.PaymentDetail, err = observeQuery[paymentdetail.Query, core.Payment](
		paymentdetail.NewQueryHandler(store), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	if h.BookDetail, err = observeQuery[bookdetail.Query, core.Book](
		bookdetail.NewQueryHandler(store), logger, obs,
	); err != nil {
		return api.Handlers{}, err
	}

	return h, nil
}

func observeCommand[C shell.Command, R any](
	handler shell.CoreCommandHandler[C, R],
	logger *slog.Logger,
	obs *observability,
) (shell.CoreCommandHandler[C, R], error) {

	options := []observable.CommandOption[C, R]{observable.WithCommandLogging[C, R](logger)}

	if obs.metrics != nil {
		options = append(options, observable.WithCommandMetrics[C, R](obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, observable.WithCommandTracing[C, R](obs.tracing))
	}

	if obs.contextualLogger != nil {
		options = append(options, observable.WithCommandContextualLogging[C, R](obs.contextualLogger))
	}

	wrapper, err := observable.NewCommandWrapper(handler, options...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func observeQuery[Q shell.Query, R any](
	handler shell.CoreQueryHandler[Q, R],
	logger *slog.Logger,
	obs *observability,
) (shell.CoreQueryHandler[Q, R], error) {

	options := []observable.QueryOption[Q, R]{observable.WithQueryLogging[Q, R](logger)}

	if obs.metrics != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, observable.WithQueryTracing[Q, R](obs.tracing))
	}

	if obs.contextualLogger != nil {
		options = append(options, observable.WithQueryContextualLogging[Q, R](obs.contextualLogger))
	}

	wrapper, err := observable.NewQueryWrapper(handler, options...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}
