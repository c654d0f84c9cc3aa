package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment recibo de cobro de un cliente, opcionalmente ligado a un acuerdo.
type Payment struct {
	ID            uint            `json:"id"`
	CustomerID    uint            `json:"customer_id"`
	AgreementID   *uint           `json:"agreement_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Period        string          `json:"period"` // periodo facturado, p. ej. "2024-01"
	Remark        string          `json:"remark"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Customer  *CustomerRef  `json:"customer,omitempty"`
	Agreement *AgreementRef `json:"agreement,omitempty"`
}
