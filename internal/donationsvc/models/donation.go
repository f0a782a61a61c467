package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDuplicatePayment is returned by stores when a donation with the same
// provider payment id already exists.
var ErrDuplicatePayment = errors.New("payment already recorded")

type PaymentMethod string

const (
	PaymentOffline PaymentMethod = "offline"
	PaymentOnline  PaymentMethod = "online"
)

// Donation is one completed donation. It is never updated once written.
type Donation struct {
	ID            string          `json:"id"`
	FullName      string          `json:"fullName"`
	Address       string          `json:"address"`
	Mobile        string          `json:"mobile"`
	Email         string          `json:"email"`
	AmountINR     decimal.Decimal `json:"amountINR"`
	Comment       string          `json:"comment"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	OrderID       string          `json:"orderId,omitempty"`   // provider order, online only
	PaymentID     string          `json:"paymentId,omitempty"` // provider payment, online only
	Date          time.Time       `json:"date"`
}

// Donor carries the six donor supplied form fields.
type Donor struct {
	FullName  string          `json:"fullName"`
	Address   string          `json:"address"`
	Mobile    string          `json:"mobile"`
	Email     string          `json:"email"`
	AmountINR decimal.Decimal `json:"amountINR"`
	Comment   string          `json:"comment"`
}

func (d Donor) Donation(method PaymentMethod, at time.Time) Donation {
	return Donation{
		FullName:      d.FullName,
		Address:       d.Address,
		Mobile:        d.Mobile,
		Email:         d.Email,
		AmountINR:     d.AmountINR,
		Comment:       d.Comment,
		PaymentMethod: method,
		Date:          at,
	}
}
