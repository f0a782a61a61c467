package service

import (
	"errors"
	"strings"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// DonorForm is the raw donor input shared by the offline, pay and
// payment-success forms. Every field is optional except that AmountINR
// must parse as a decimal.
type DonorForm struct {
	FullName  string
	Address   string
	Mobile    string
	Email     string
	AmountINR string
	Comment   string
}

func (f DonorForm) Donor() (models.Donor, error) {
	amount, err := ParseAmount(f.AmountINR)
	if err != nil {
		return models.Donor{}, err
	}

	return models.Donor{
		FullName:  strings.TrimSpace(f.FullName),
		Address:   strings.TrimSpace(f.Address),
		Mobile:    strings.TrimSpace(f.Mobile),
		Email:     strings.TrimSpace(f.Email),
		AmountINR: amount,
		Comment:   strings.TrimSpace(f.Comment),
	}, nil
}

func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
