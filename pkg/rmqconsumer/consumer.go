// Package rmqconsumer reads contact change events back from RabbitMQ and logs them.
package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"contacts-api/config"
	"contacts-api/internal/infrastructure/mq"
)

const (
	preFetchCount = 1
	consumerTag   = "contactsapi-events-log"
)

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

// New reuses conn when given. Otherwise call Connect first.
func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger.Named("rmqconsumer"),
		conn: conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.conn = conn

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

// Init attaches to the events queue. The publisher declares the exchange,
// queue and bindings, so the queue is only checked passively here.
func (c *Consumer) Init() error {
	if c.conn == nil {
		return fmt.Errorf("amqp: consumer is not connected")
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	if _, err = ch.QueueDeclarePassive(c.cfg.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue %q: %w", c.cfg.QueueName, err)
	}
	if err = ch.Qos(preFetchCount, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := ch.Consume(c.cfg.QueueName, consumerTag, false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume: %w", err)
	}
	c.chConsume, c.chDelivery = ch, deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			_ = c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event %q: %w", msg.MessageId, err)
	}

	c.log.Info("contact event",
		zap.String("action", actionName(msg.RoutingKey)),
		zap.String("event_id", e.Id.String()),
		zap.Int64("owner_id", e.OwnerID),
		zap.Int64("contact_id", e.Contact.ID),
		zap.Time("time_stamp", e.TS),
	)

	return nil
}

func actionName(routingKey string) string {
	switch routingKey {
	case mq.ContactCreated:
		return "ContactCreated"
	case mq.ContactUpdated:
		return "ContactUpdated"
	case mq.ContactDeleted:
		return "ContactDeleted"
	}
	return ""
}
