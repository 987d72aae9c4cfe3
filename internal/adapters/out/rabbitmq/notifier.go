// Package rabbitmq provides the email notifier. Mail is not sent inline:
// notifications are enqueued as durable jobs on a RabbitMQ queue and a
// separate mailer service drains them, so a slow or down SMTP provider never
// blocks a shipping request.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"shipping/internal/core/ports"
)

// EmailJobsQueue is the queue the mailer service consumes.
const EmailJobsQueue = "email_jobs"

const publishTimeout = 3 * time.Second

// emailJob is the wire format of one queued notification.
type emailJob struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmailQueueNotifier implements ports.Notifier by publishing email jobs to
// RabbitMQ.
type EmailQueueNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewEmailQueueNotifier dials the broker, opens a channel, and declares the
// email jobs queue so publishing never fails on missing infrastructure.
func NewEmailQueueNotifier(url string) (*EmailQueueNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err = ch.QueueDeclare(EmailJobsQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", EmailJobsQueue, err)
	}

	return &EmailQueueNotifier{conn: conn, ch: ch}, nil
}

// SendEmail enqueues one notification as a persistent JSON job.
func (n *EmailQueueNotifier) SendEmail(ctx context.Context, email ports.Email) error {
	job := emailJob{
		ID:        uuid.NewString(),
		To:        email.To,
		Subject:   email.Subject,
		Content:   email.Content,
		CreatedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return n.ch.PublishWithContext(
		pubCtx,
		"",             // default exchange
		EmailJobsQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID,
			Body:         body,
		},
	)
}

// Close releases the channel and connection.
func (n *EmailQueueNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		return err
	}
	return n.conn.Close()
}
