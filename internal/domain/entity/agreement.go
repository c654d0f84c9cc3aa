package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agreement contrato de honorarios entre la firma y un cliente.
type Agreement struct {
	ID              uint            `json:"id"`
	CustomerID      uint            `json:"customer_id"`
	AgreementNumber string          `json:"agreement_number"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	FeeType         FeeType         `json:"fee_type"`
	Amount          decimal.Decimal `json:"amount"`
	Status          AgreementStatus `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Customer *CustomerRef `json:"customer,omitempty"`
	Payments []Payment    `json:"payments,omitempty"`
}

// ActiveOn indica si el acuerdo está vigente en la fecha dada.
func (a *Agreement) ActiveOn(t time.Time) bool {
	if a.Status != AgreementActive {
		return false
	}
	return !t.Before(a.StartDate) && !t.After(a.EndDate)
}

// AgreementRef resumen de acuerdo incrustado en un cobro.
type AgreementRef struct {
	ID              uint            `json:"id"`
	AgreementNumber string          `json:"agreement_number"`
	FeeType         FeeType         `json:"fee_type"`
	Amount          decimal.Decimal `json:"amount"`
}
