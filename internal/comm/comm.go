package comm

import (
	"encoding/json"
	"time"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
)

const TypeDonationCreated = "donation-created"

// WSMessage is the envelope shared by the admin feed socket and the NATS subject.
type WSMessage struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

type DonationEvent struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	AmountINR     string    `json:"amount_inr"`
	PaymentMethod string    `json:"payment_method"`
	PaymentID     string    `json:"payment_id,omitempty"`
	Date          time.Time `json:"date"`
}

func NewDonationEvent(d *models.Donation) DonationEvent {
	return DonationEvent{
		ID:            d.ID,
		FullName:      d.FullName,
		AmountINR:     d.AmountINR.StringFixed(2),
		PaymentMethod: string(d.PaymentMethod),
		PaymentID:     d.PaymentID,
		Date:          d.Date,
	}
}

// DonationCreatedMessage wraps d in a WSMessage ready to publish or broadcast.
func DonationCreatedMessage(d *models.Donation) (*WSMessage, error) {
	data, err := json.Marshal(NewDonationEvent(d))
	if err != nil {
		return nil, err
	}
	return &WSMessage{Type: TypeDonationCreated, Data: data}, nil
}
