package entity

import "time"

// Person persona física: personal, representante legal, inversor o persona de servicio.
type Person struct {
	ID                        uint      `json:"id"`
	IsServicePerson           bool      `json:"is_service_person"`
	Name                      string    `json:"name"`
	Phone                     string    `json:"phone"`
	IDCard                    string    `json:"id_card"`
	Password                  string    `json:"password,omitempty"`
	RepresentativeCustomerIDs IDList    `json:"representative_customer_ids"` // empresas donde es representante legal
	InvestorCustomerIDs       IDList    `json:"investor_customer_ids"`       // empresas donde es inversor
	ServiceCustomerIDs        IDList    `json:"service_customer_ids"`        // empresas que atiende
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// ServicePersonnel persona de servicio con el número de clientes asignados.
type ServicePersonnel struct {
	ID                 uint      `json:"id"`
	Type               string    `json:"type"` // siempre "服务人员"
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Password           string    `json:"password,omitempty"`
	IDCard             string    `json:"id_card"`
	ServiceCustomerIDs IDList    `json:"service_customer_ids,omitempty"`
	CustomerCount      int       `json:"customer_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ServicePersonType valor fijo del campo Type.
const ServicePersonType = "服务人员"

// PersonCustomers empresas relacionadas con una persona, por papel.
type PersonCustomers struct {
	Representative []Customer `json:"representative"`
	Investor       []Customer `json:"investor"`
	Service        []Customer `json:"service"`
}
