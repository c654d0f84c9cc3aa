package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRef resumen de cliente que el backend incrusta en tareas, acuerdos y cobros.
type CustomerRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number"`
}

// Customer cliente corporativo de la firma (forma más reciente del backend).
type Customer struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	TaxNumber        string           `json:"tax_number"`
	Type             CustomerType     `json:"type"`
	RepresentativeID *uint            `json:"representative_id,omitempty"`
	InvestorIDs      IDList           `json:"investor_ids,omitempty"`
	Investors        string           `json:"investors,omitempty"` // JSON con []Investor
	ServicePersonIDs IDList           `json:"service_person_ids,omitempty"`
	AgreementIDs     IDList           `json:"agreement_ids,omitempty"`
	RegisteredCap    *decimal.Decimal `json:"registered_capital,omitempty"`
	TaxpayerType     TaxpayerType     `json:"taxpayer_type,omitempty"`

	LicenseRegistrationDate string `json:"license_registration_date,omitempty"`
	TaxRegistrationDate     string `json:"tax_registration_date,omitempty"`
	TaxOffice               string `json:"tax_office,omitempty"`
	TaxAdministrator        string `json:"tax_administrator,omitempty"`
	TaxAdministratorPhone   string `json:"tax_administrator_phone,omitempty"`

	TaxAgentIDs          IDList       `json:"tax_agent_ids,omitempty"`
	CreditRating         CreditRating `json:"credit_rating,omitempty"`
	SocialSecurityNumber string       `json:"social_security_number,omitempty"`
	YukuaiBanPassword    string       `json:"yukuai_ban_password,omitempty"`
	BusinessScope        string       `json:"business_scope,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relaciones cargadas por el backend en el detalle.
	Representative    *Person            `json:"representative,omitempty"`
	InvestorList      []Person           `json:"investor_list,omitempty"`
	InvestorRelations []CustomerInvestor `json:"investor_relations,omitempty"`
	ServicePersons    []Person           `json:"service_persons,omitempty"`
	TaxAgents         []Person           `json:"tax_agents,omitempty"`
	AgreementsList    []Agreement        `json:"agreements_list,omitempty"`
	BankAccounts      []BankAccount      `json:"bank_accounts,omitempty"`
}

// Ref devuelve el resumen del cliente.
func (c *Customer) Ref() CustomerRef {
	return CustomerRef{ID: c.ID, Name: c.Name, TaxNumber: c.TaxNumber}
}

// Investor participación declarada en el campo investors del cliente.
type Investor struct {
	PersonID   uint            `json:"person_id"`
	ShareRatio decimal.Decimal `json:"share_ratio"`
}

// InvestmentRecord aportación de capital de un inversor.
type InvestmentRecord struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// CustomerInvestor relación cliente-inversor con su porcentaje.
type CustomerInvestor struct {
	ID                uint               `json:"id"`
	CustomerID        uint               `json:"customer_id"`
	PersonID          uint               `json:"person_id"`
	ShareRatio        decimal.Decimal    `json:"share_ratio"`
	InvestmentRecords []InvestmentRecord `json:"investment_records,omitempty"`
	Person            *Person            `json:"person,omitempty"`
}

// BankAccount cuenta bancaria corporativa del cliente.
type BankAccount struct {
	ID            uint        `json:"id"`
	CustomerID    uint        `json:"customer_id"`
	BankName      string      `json:"bank_name"`
	AccountNumber string      `json:"account_number"`
	BankCode      string      `json:"bank_code,omitempty"`
	ContactPhone  string      `json:"contact_phone,omitempty"`
	AccountType   AccountType `json:"account_type"`
}
