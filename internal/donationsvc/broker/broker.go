package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/satsangkankpul/donation-services/internal/comm"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	log "github.com/sirupsen/logrus"
)

// Broker publishes donation events for other services on a NATS subject.
type Broker struct {
	Conn    *nats.Conn
	Subject string
}

func NewBroker(conn *nats.Conn, subject string) *Broker {
	return &Broker{
		Conn:    conn,
		Subject: subject,
	}
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// DonationCreated implements service.Notifier.
func (b *Broker) DonationCreated(d *models.Donation) {
	msg, err := comm.DonationCreatedMessage(d)
	if err != nil {
		log.Errorf("marshal donation event: %v", err)
		return
	}

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	if err := b.Publish(b.Subject, bytes); err != nil {
		return
	}
	log.Debugf("published %s for donation %s to %s", msg.Type, d.ID, b.Subject)
}

// Subscribe hands every decoded event on the subject to fn.
func (b *Broker) Subscribe(fn func(*comm.WSMessage)) (*nats.Subscription, error) {
	return b.Conn.Subscribe(b.Subject, func(msgNats *nats.Msg) {
		message := &comm.WSMessage{}
		if err := json.Unmarshal(msgNats.Data, message); err != nil {
			log.Errorf("Error decoding message on %s: %s", msgNats.Subject, err)
			return
		}
		fn(message)
	})
}
