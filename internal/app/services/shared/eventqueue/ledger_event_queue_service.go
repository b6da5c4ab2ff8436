package eventqueue

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Service publishes ledger events to a durable queue and waits for the
// broker to confirm each message.
type Service struct {
	ch        channel
	confirms  <-chan amqp.Confirmation
	queueName string
	log       *zap.Logger
	mu        sync.Mutex
}

// NewService opens a channel on conn, declares the queue and enables
// publisher confirms.
func NewService(conn *amqp.Connection, queueName string, log *zap.Logger) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		ch.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	return newService(ch, confirms, queueName, log), nil
}

func newService(ch channel, confirms <-chan amqp.Confirmation, queueName string, log *zap.Logger) *Service {
	return &Service{
		ch:        ch,
		confirms:  confirms,
		queueName: queueName,
		log:       log,
	}
}

var _ contracts.EventPublisher = (*Service)(nil)

func (s *Service) Publish(ctx context.Context, event models.LedgerEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Debug("eventqueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingQueueKey, s.queueName),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	select {
	case confirmed, ok := <-s.confirms:
		if !ok {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("channel closed before confirm"), s.queueName)
		}
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), s.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queueName)
	}
	return nil
}

// Close closes the underlying channel.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.Close()
}
