package erpapi

import (
	"context"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

const pathCustomers = "/customers"

// CustomerService /customers y catálogos asociados.
type CustomerService struct{ c *Client }

// Types GET /customers/types.
func (s *CustomerService) Types(ctx context.Context) ([]entity.CustomerType, error) {
	return Get[[]entity.CustomerType](ctx, s.c, "/customers/types", nil)
}

// CreditRatings GET /customers/credit-ratings.
func (s *CustomerService) CreditRatings(ctx context.Context) ([]entity.CreditRating, error) {
	return Get[[]entity.CreditRating](ctx, s.c, "/customers/credit-ratings", nil)
}

// AccountTypes GET /bank-accounts/types.
func (s *CustomerService) AccountTypes(ctx context.Context) ([]entity.AccountType, error) {
	return Get[[]entity.AccountType](ctx, s.c, "/bank-accounts/types", nil)
}

func (s *CustomerService) List(ctx context.Context, q dto.CustomerQuery) (*dto.ListResult[entity.Customer], error) {
	return Get[*dto.ListResult[entity.Customer]](ctx, s.c, pathCustomers, q.Values())
}

func (s *CustomerService) Create(ctx context.Context, cu *entity.Customer) (*entity.Customer, error) {
	return Post[*entity.Customer](ctx, s.c, pathCustomers, cu)
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*entity.Customer, error) {
	return Get[*entity.Customer](ctx, s.c, idPath(pathCustomers, id), nil)
}

func (s *CustomerService) Update(ctx context.Context, id uint, cu *entity.Customer) (*entity.Customer, error) {
	return Put[*entity.Customer](ctx, s.c, idPath(pathCustomers, id), cu)
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath(pathCustomers, id))
	return err
}

// Tasks GET /customers/:id/tasks.
func (s *CustomerService) Tasks(ctx context.Context, id uint) ([]entity.Task, error) {
	return Get[[]entity.Task](ctx, s.c, idPath(pathCustomers, id, "tasks"), nil)
}

// Payments GET /customers/:id/payments.
func (s *CustomerService) Payments(ctx context.Context, id uint) ([]entity.Payment, error) {
	return Get[[]entity.Payment](ctx, s.c, idPath(pathCustomers, id, "payments"), nil)
}
