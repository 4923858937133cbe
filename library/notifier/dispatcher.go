package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	// NotifierEnqueuedMetric counts Notify calls by status (success, dropped).
	NotifierEnqueuedMetric = "notifier_enqueued_total"

	// NotifierDeliveriesMetric counts delivery attempts by status (success, error).
	NotifierDeliveriesMetric = "notifier_deliveries_total"

	// NotifierDeliveryDurationMetric tracks how long one delivery took.
	NotifierDeliveryDurationMetric = "notifier_delivery_duration_seconds"

	// NotifierQueueLatencyMetric tracks how long a message waited in the queue.
	NotifierQueueLatencyMetric = "notifier_queue_latency_seconds"

	statusSuccess = "success"
	statusError   = "error"
	statusDropped = "dropped"
	labelStatus   = "status"

	defaultWorkers       = 2
	defaultSendTimeout   = 10 * time.Second
	dequeueErrorBackoff  = 500 * time.Millisecond
	logMsgEnqueueFailed  = "notifier: dropping notification"
	logMsgDeliveryFailed = "notifier: delivery failed"
	logMsgDequeueFailed  = "notifier: reading the queue failed"
	logMsgWorkersStarted = "notifier: workers started"
	logMsgWorkersStopped = "notifier: workers stopped"
	logAttrError         = "error"
	logAttrMessageID     = "message_id"
	logAttrWorkers       = "workers"
)

// DispatcherOption defines a functional option for configuring the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithWorkers sets the number of delivery workers, at least 1.
func WithWorkers(workers int) DispatcherOption {
	return func(d *Dispatcher) {
		if workers > 0 {
			d.workers = workers
		}
	}
}

// WithSendTimeout bounds a single delivery.
func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.sendTimeout = timeout
	}
}

// WithLogger sets the logger for dropped and failed notifications.
func WithLogger(logger shell.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets the collector for the notifier_* metrics.
func WithMetrics(collector shell.MetricsCollector) DispatcherOption {
	return func(d *Dispatcher) {
		d.metricsCollector = collector
	}
}

// Dispatcher is a shell.Notifier backed by a Queue and a pool of delivery workers.
type Dispatcher struct {
	queue            Queue
	sender           Sender
	workers          int
	sendTimeout      time.Duration
	logger           shell.Logger
	metricsCollector shell.MetricsCollector

	startOnce sync.Once
	wg        sync.WaitGroup
	cancel    context.CancelFunc
}

var _ shell.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. Call Start to begin delivering and Shutdown to stop.
func NewDispatcher(queue Queue, sender Sender, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		queue:       queue,
		sender:      sender,
		workers:     defaultWorkers,
		sendTimeout: defaultSendTimeout,
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// Notify enqueues the text. It never blocks on delivery and never fails the caller.
func (d *Dispatcher) Notify(ctx context.Context, text string) {
	message := NewMessage(text)

	if err := d.queue.Enqueue(ctx, message); err != nil {
		d.logWarn(logMsgEnqueueFailed, logAttrMessageID, message.ID, logAttrError, err.Error())
		d.incrementCounter(ctx, NotifierEnqueuedMetric, statusDropped)

		return
	}

	d.incrementCounter(ctx, NotifierEnqueuedMetric, statusSuccess)
}

// Start launches the workers. Calling it again has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		d.cancel = cancel

		for range d.workers {
			d.wg.Add(1)

			go func() {
				defer d.wg.Done()
				d.work(ctx)
			}()
		}

		d.logInfo(logMsgWorkersStarted, logAttrWorkers, d.workers)
	})
}

// Shutdown closes the queue and waits until the workers have delivered what is left.
// If ctx ends first, the workers are cancelled and ctx.Err() is returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if err := d.queue.Close(); err != nil {
		return err
	}

	if d.cancel == nil {
		return nil
	}

	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logInfo(logMsgWorkersStopped)

		return nil

	case <-ctx.Done():
		d.cancel()
		<-done

		return ctx.Err()
	}
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		message, err := d.queue.Dequeue(ctx)

		switch {
		case errors.Is(err, ErrQueueClosed), ctx.Err() != nil:
			return

		case errors.Is(err, ErrMalformedMessage):
			d.logWarn(logMsgDequeueFailed, logAttrError, err.Error())
			continue

		case err != nil:
			d.logWarn(logMsgDequeueFailed, logAttrError, err.Error())

			select {
			case <-time.After(dequeueErrorBackoff):
			case <-ctx.Done():
				return
			}

			continue
		}

		d.deliver(ctx, message)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, message Message) {
	if !message.EnqueuedAt.IsZero() {
		d.recordDuration(ctx, NotifierQueueLatencyMetric, time.Since(message.EnqueuedAt), statusSuccess)
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(sendCtx, message.Text)
	duration := time.Since(start)

	if err != nil {
		d.logError(logMsgDeliveryFailed, logAttrMessageID, message.ID, logAttrError, err.Error())
		d.recordDuration(ctx, NotifierDeliveryDurationMetric, duration, statusError)
		d.incrementCounter(ctx, NotifierDeliveriesMetric, statusError)

		return
	}

	d.recordDuration(ctx, NotifierDeliveryDurationMetric, duration, statusSuccess)
	d.incrementCounter(ctx, NotifierDeliveriesMetric, statusSuccess)
}

func (d *Dispatcher) incrementCounter(ctx context.Context, metric, status string) {
	if d.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelStatus: status}

	if contextual, ok := d.metricsCollector.(shell.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	d.metricsCollector.IncrementCounter(metric, labels)
}

func (d *Dispatcher) recordDuration(ctx context.Context, metric string, duration time.Duration, status string) {
	if d.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelStatus: status}

	if contextual, ok := d.metricsCollector.(shell.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	d.metricsCollector.RecordDuration(metric, duration, labels)
}

func (d *Dispatcher) logInfo(message string, args ...any) {
	if d.logger != nil {
		d.logger.Info(message, args...)
	}
}

func (d *Dispatcher) logWarn(message string, args ...any) {
	if d.logger != nil {
		d.logger.Warn(message, args...)
	}
}

func (d *Dispatcher) logError(message string, args ...any) {
	if d.logger != nil {
		d.logger.Error(message, args...)
	}
}
