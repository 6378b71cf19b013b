package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

// VerificationSender is the piece of the mail sender the worker needs.
type VerificationSender interface {
	SendVerification(name, email, token string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  VerificationSender
}

func NewWorker(ch *amqp.Channel, sender VerificationSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload usecase.VerificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Malformed message, reject without requeue so the queue
				// doesn't wedge.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Sending verification email to %s", payload.Email)

			if err := w.Sender.SendVerification(payload.Name, payload.Email, payload.Token); err != nil {
				log.Printf("❌ [WORKER] SMTP delivery failed: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Verification email delivered to %s", payload.Email)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}
