package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"contacts-api/config"
	"contacts-api/internal/infrastructure/metrics"
)

const (
	bufferSize   = 256
	drainTimeout = 2 * time.Second
)

// RabbitMQ publishes contact events to a durable exchange. Events are
// queued in memory and sent by PublisherWorker.
type RabbitMQ struct {
	cfg      config.MQ
	log      *zap.Logger
	mCounter *prometheus.CounterVec
	conn     *amqp091.Connection
	pubCh    *amqp091.Channel
	queue    chan Event
}

func New(cfg config.MQ, logger *zap.Logger, mCounter *prometheus.CounterVec) *RabbitMQ {
	return &RabbitMQ{
		cfg:      cfg,
		log:      logger.Named("mq"),
		mCounter: mCounter,
		queue:    make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	conn, err := amqp091.DialConfig(dsn, amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.Table{"connection_name": "contactsapi-publisher"},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

// Init declares the exchange plus a durable queue bound to every contact routing key.
func (r *RabbitMQ) Init() error {
	if r.pubCh == nil {
		return fmt.Errorf("amqp: publisher is not connected")
	}

	if err := r.pubCh.ExchangeDeclare(r.cfg.Exchange, r.cfg.ExchangeType, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", r.cfg.Exchange, err)
	}
	q, err := r.pubCh.QueueDeclare(r.cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %q: %w", r.cfg.QueueName, err)
	}
	for _, rk := range RoutingKeys {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %q: %w", rk, err)
		}
	}

	return nil
}

// Publish enqueues e. A full queue drops the event.
func (r *RabbitMQ) Publish(e Event) {
	select {
	case r.queue <- e:
	default:
		r.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
		r.log.Warn("event queue full, event dropped",
			zap.String("action", e.Action),
			zap.String("event_id", e.Id.String()),
			zap.Int64("owner_id", e.OwnerID),
		)
	}
}

// PublisherWorker sends queued events until ctx is done, then flushes
// what is left within drainTimeout. The connection stays open for the consumer.
func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("publisher worker started")
	defer r.log.Info("publisher worker stopped")

	for {
		select {
		case e := <-r.queue:
			r.send(ctx, e)
		case <-ctx.Done():
			r.drain()
			_ = r.pubCh.Close()
			return
		}
	}
}

func (r *RabbitMQ) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case e := <-r.queue:
			r.send(ctx, e)
		default:
			return
		}
	}
}

func (r *RabbitMQ) send(ctx context.Context, e Event) {
	if err := r.publish(ctx, e); err != nil {
		r.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
		r.log.Error("publish event",
			zap.String("action", e.Action),
			zap.String("event_id", e.Id.String()),
			zap.Error(err),
		)
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return r.pubCh.PublishWithContext(ctx, r.cfg.Exchange, e.Action, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Action,
		Body:         body,
	})
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Event) {}
