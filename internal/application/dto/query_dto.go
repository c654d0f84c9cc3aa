package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// DateLayout formato de fecha que espera el backend.
const DateLayout = "2006-01-02"

// PeopleQuery filtros de GET /people.
type PeopleQuery struct {
	PageRequest
	Keyword         string
	IsServicePerson *bool
}

func (q PeopleQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "keyword", q.Keyword)
	if q.IsServicePerson != nil {
		v.Set("is_service_person", strconv.FormatBool(*q.IsServicePerson))
	}
	q.encode(v)
	return v
}

// ServicePersonnelQuery filtros de GET /service-personnel.
type ServicePersonnelQuery struct {
	Keyword string
}

func (q ServicePersonnelQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "keyword", q.Keyword)
	return v
}

// CustomerQuery filtros de GET /customers. Representative, Investor y
// ServicePerson filtran por nombre de la persona relacionada.
type CustomerQuery struct {
	PageRequest
	Keyword        string
	Representative string
	Investor       string
	ServicePerson  string
}

func (q CustomerQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "keyword", q.Keyword)
	setString(v, "representative", q.Representative)
	setString(v, "investor", q.Investor)
	setString(v, "service_person", q.ServicePerson)
	q.encode(v)
	return v
}

// AgreementQuery filtros de GET /agreements.
type AgreementQuery struct {
	Keyword    string
	Status     entity.AgreementStatus
	CustomerID uint
}

func (q AgreementQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "keyword", q.Keyword)
	setString(v, "status", string(q.Status))
	setUint(v, "customer_id", q.CustomerID)
	return v
}

// PaymentQuery filtros de GET /payments. Fechas en formato 2006-01-02.
type PaymentQuery struct {
	CustomerID uint
	StartDate  string
	EndDate    string
}

func (q PaymentQuery) Values() url.Values {
	v := url.Values{}
	setUint(v, "customer_id", q.CustomerID)
	setString(v, "start_date", q.StartDate)
	setString(v, "end_date", q.EndDate)
	return v
}

// TaskQuery filtros de GET /tasks.
type TaskQuery struct {
	Keyword    string
	Status     entity.TaskStatus
	CustomerID uint
}

func (q TaskQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "keyword", q.Keyword)
	setString(v, "status", string(q.Status))
	setUint(v, "customer_id", q.CustomerID)
	return v
}

// AuditLogQuery filtros de GET /audit-logs y /admin/audit-logs.
type AuditLogQuery struct {
	PageRequest
	Status entity.AuditStatus
}

func (q AuditLogQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "status", string(q.Status))
	q.encode(v)
	return v
}

// DateRange rango opcional para estadísticas de cobros.
type DateRange struct {
	StartDate string
	EndDate   string
}

// Validate exige fechas YYYY-MM-DD y StartDate <= EndDate cuando ambas existen.
func (q DateRange) Validate() error {
	var start, end time.Time
	var err error
	if q.StartDate != "" {
		if start, err = time.Parse(DateLayout, q.StartDate); err != nil {
			return fmt.Errorf("%w: fecha inicial %q", domain.ErrInvalidInput, q.StartDate)
		}
	}
	if q.EndDate != "" {
		if end, err = time.Parse(DateLayout, q.EndDate); err != nil {
			return fmt.Errorf("%w: fecha final %q", domain.ErrInvalidInput, q.EndDate)
		}
	}
	if q.StartDate != "" && q.EndDate != "" && end.Before(start) {
		return fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	return nil
}

func (q DateRange) Values() url.Values {
	v := url.Values{}
	setString(v, "start_date", q.StartDate)
	setString(v, "end_date", q.EndDate)
	return v
}
