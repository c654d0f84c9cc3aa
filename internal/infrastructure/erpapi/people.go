package erpapi

import (
	"context"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

const (
	pathPeople           = "/people"
	pathServicePersonnel = "/service-personnel"
)

// PeopleService /people. Create y Update devuelven nil sin error cuando la
// operación queda pendiente de aprobación.
type PeopleService struct{ c *Client }

func (s *PeopleService) List(ctx context.Context, q dto.PeopleQuery) (*dto.ListResult[entity.Person], error) {
	return Get[*dto.ListResult[entity.Person]](ctx, s.c, pathPeople, q.Values())
}

func (s *PeopleService) Create(ctx context.Context, p *entity.Person) (*entity.Person, error) {
	return Post[*entity.Person](ctx, s.c, pathPeople, p)
}

func (s *PeopleService) Get(ctx context.Context, id uint) (*entity.Person, error) {
	return Get[*entity.Person](ctx, s.c, idPath(pathPeople, id), nil)
}

func (s *PeopleService) Update(ctx context.Context, id uint, p *entity.Person) (*entity.Person, error) {
	return Put[*entity.Person](ctx, s.c, idPath(pathPeople, id), p)
}

func (s *PeopleService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath(pathPeople, id))
	return err
}

// Customers GET /people/:id/customers: empresas por papel de la persona.
func (s *PeopleService) Customers(ctx context.Context, id uint) (*entity.PersonCustomers, error) {
	return Get[*entity.PersonCustomers](ctx, s.c, idPath(pathPeople, id, "customers"), nil)
}

// ServicePersonnelService /service-personnel.
type ServicePersonnelService struct{ c *Client }

func (s *ServicePersonnelService) List(ctx context.Context, q dto.ServicePersonnelQuery) (*dto.ListResult[entity.ServicePersonnel], error) {
	return Get[*dto.ListResult[entity.ServicePersonnel]](ctx, s.c, pathServicePersonnel, q.Values())
}

func (s *ServicePersonnelService) Create(ctx context.Context, p *entity.ServicePersonnel) (*entity.ServicePersonnel, error) {
	return Post[*entity.ServicePersonnel](ctx, s.c, pathServicePersonnel, p)
}

func (s *ServicePersonnelService) Get(ctx context.Context, id uint) (*entity.ServicePersonnel, error) {
	return Get[*entity.ServicePersonnel](ctx, s.c, idPath(pathServicePersonnel, id), nil)
}

func (s *ServicePersonnelService) Update(ctx context.Context, id uint, p *entity.ServicePersonnel) (*entity.ServicePersonnel, error) {
	return Put[*entity.ServicePersonnel](ctx, s.c, idPath(pathServicePersonnel, id), p)
}

func (s *ServicePersonnelService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath(pathServicePersonnel, id))
	return err
}
