// Package service publishes domain events to RabbitMQ.  Errors are logged
// and returned so callers can ignore them without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/queue"
)

// ShowPublisher sends ShowCreatedEvents to the show.created queue.  It
// dials the broker once per publish.
type ShowPublisher struct {
	url string
	log *zap.Logger
}

// NewShowPublisher returns a publisher for the broker at url.
func NewShowPublisher(url string, log *zap.Logger) *ShowPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShowPublisher{url: url, log: log.Named("show-publisher")}
}

// defaultDialTimeout applies when ctx has no deadline.
const defaultDialTimeout = 5 * time.Second

// dialTimeout bounds the broker dial by ctx's deadline.
func dialTimeout(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout
	}
	if d := time.Until(deadline); d > 0 {
		return d
	}
	return time.Millisecond
}

// PublishShowCreated publishes ev as a persistent JSON message.
func (p *ShowPublisher) PublishShowCreated(ctx context.Context, ev queue.ShowCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("marshal event failed", zap.Error(err))
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		p.log.Warn("dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.ShowCreatedQueue, // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		p.log.Warn("queue declare failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ShowCreatedQueue, false, false, pub); err != nil {
		p.log.Warn("publish failed", zap.Int64("show_id", ev.ShowID), zap.Error(err))
		return err
	}
	return nil
}
