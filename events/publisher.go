package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Bilal-Yasir34/apex-store/models"
)

const orderCreatedQueue = "order.created"

// Publisher pushes order events to RabbitMQ for downstream consumers
// (confirmation mails, fulfilment). Publishing is best-effort: a broker
// outage is logged and never fails a checkout.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(
		orderCreatedQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// OrderPlaced implements checkout.Notifier.
func (p *Publisher) OrderPlaced(order models.Order) {
	body, err := json.Marshal(order)
	if err != nil {
		log.Printf("order event marshal error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.channel.PublishWithContext(ctx,
		"",                // default exchange
		orderCreatedQueue, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		log.Printf("order event publish error: %v", err)
	}
}

func (p *Publisher) Close() {
	if err := p.channel.Close(); err != nil {
		log.Printf("rabbitmq channel close error: %v", err)
	}
	if err := p.conn.Close(); err != nil {
		log.Printf("rabbitmq connection close error: %v", err)
	}
}
