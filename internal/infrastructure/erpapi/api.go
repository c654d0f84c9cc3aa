package erpapi

import "fmt"

// API agrupa los servicios por recurso sobre un mismo Client.
type API struct {
	Client           *Client
	Auth             *AuthService
	People           *PeopleService
	ServicePersonnel *ServicePersonnelService
	Customers        *CustomerService
	Agreements       *AgreementService
	Payments         *PaymentService
	Tasks            *TaskService
	Statistics       *StatisticsService
	AuditLogs        *AuditLogService
	Admin            *AdminService
	Transfer         *TransferService
}

// New construye todos los servicios.
func New(c *Client) *API {
	return &API{
		Client:           c,
		Auth:             &AuthService{c: c},
		People:           &PeopleService{c: c},
		ServicePersonnel: &ServicePersonnelService{c: c},
		Customers:        &CustomerService{c: c},
		Agreements:       &AgreementService{c: c},
		Payments:         &PaymentService{c: c},
		Tasks:            &TaskService{c: c},
		Statistics:       &StatisticsService{c: c},
		AuditLogs:        &AuditLogService{c: c},
		Admin:            &AdminService{c: c},
		Transfer:         &TransferService{c: c},
	}
}

func idPath(base string, id uint, suffix ...string) string {
	p := fmt.Sprintf("%s/%d", base, id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
