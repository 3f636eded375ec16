package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"shelter_sync/internal/domain"
)

// RabbitMQ publishes a report after each completed ETL run so downstream
// consumers can react to fresh data without polling the database.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

// RunReport is the wire format of one run's outcome.
type RunReport struct {
	Source     string    `json:"source"`
	Fetched    int       `json:"fetched"`
	Loaded     int       `json:"loaded"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

func (r *RabbitMQ) Publish(ctx context.Context, stats *domain.RunStats) error {
	report := RunReport{
		Source:     stats.Source,
		Fetched:    stats.Fetched,
		Loaded:     stats.Loaded,
		DurationMS: stats.Duration.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish run report: %w", err)
	}

	r.logger.Debug("published run report",
		"source", report.Source,
		"loaded", report.Loaded,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
