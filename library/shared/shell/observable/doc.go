// Package observable wraps command and query handlers with metrics, tracing and logging,
// so that the handlers themselves contain only the read, decide and write workflow.
//
// Wrapping happens at wiring time, not inside handler constructors:
//
//	coreHandler := borrowbook.NewCommandHandler(store, borrowbook.WithNotifier(notifier))
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[borrowbook.Command, borrowbook.Result](metricsCollector),
//		observable.WithCommandTracing[borrowbook.Command, borrowbook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command, borrowbook.Result](contextualLogger),
//	)
//
//	result, handlerResult, err := handler.Handle(ctx, command)
//
// Tests of business behavior use the core handlers directly.
package observable
