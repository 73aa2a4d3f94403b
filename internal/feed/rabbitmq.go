package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"canteen-backend/domain"

	"github.com/gofiber/fiber/v2/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange = "orders_topic"
	publishTimeout = 5 * time.Second
)

type rabbitFeed struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex // serialises publishes on ch
}

// RoutingKey addresses every change of one canteen's orders.
func RoutingKey(canteenID string) string {
	return fmt.Sprintf("orders.%s", canteenID)
}

func NewRabbitFeed(url string) (Feed, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &rabbitFeed{conn: conn, ch: ch}, nil
}

func (f *rabbitFeed) Publish(ctx context.Context, event domain.OrderChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ch.PublishWithContext(ctx, OrdersExchange, RoutingKey(event.CanteenID), false, false, amqp.Publishing{
		DeliveryMode: amqp.Transient,
		ContentType:  "application/json",
		Timestamp:    event.At,
		MessageId:    fmt.Sprintf("%s-%d", event.OrderID, event.At.UnixNano()),
		Headers: amqp.Table{
			"x-source": "order-service",
			"x-table":  event.Table,
		},
		Body: body,
	})
}

func (f *rabbitFeed) Subscribe(ctx context.Context, canteenID string) (<-chan domain.OrderChangeEvent, func(), error) {
	if f.conn.IsClosed() {
		return nil, nil, errors.New("rabbitmq connection is closed")
	}
	ch, err := f.conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, nil, err
	}
	if err := ch.QueueBind(q.Name, RoutingKey(canteenID), OrdersExchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, nil, err
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, nil, err
	}

	out := make(chan domain.OrderChangeEvent, subscriberBuffer)
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer close(out)
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				var event domain.OrderChangeEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Warnf("dropping malformed order event: %v", err)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, cancel, nil
}

func (f *rabbitFeed) Close() error {
	if f.ch != nil {
		_ = f.ch.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
