package erpapi

import (
	"context"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

const (
	pathAgreements = "/agreements"
	pathPayments   = "/payments"
	pathTasks      = "/tasks"
)

// AgreementService /agreements.
type AgreementService struct{ c *Client }

func (s *AgreementService) List(ctx context.Context, q dto.AgreementQuery) (*dto.ListResult[entity.Agreement], error) {
	return Get[*dto.ListResult[entity.Agreement]](ctx, s.c, pathAgreements, q.Values())
}

func (s *AgreementService) Create(ctx context.Context, a *entity.Agreement) (*entity.Agreement, error) {
	return Post[*entity.Agreement](ctx, s.c, pathAgreements, a)
}

func (s *AgreementService) Get(ctx context.Context, id uint) (*entity.Agreement, error) {
	return Get[*entity.Agreement](ctx, s.c, idPath(pathAgreements, id), nil)
}

func (s *AgreementService) Update(ctx context.Context, id uint, a *entity.Agreement) (*entity.Agreement, error) {
	return Put[*entity.Agreement](ctx, s.c, idPath(pathAgreements, id), a)
}

func (s *AgreementService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath(pathAgreements, id))
	return err
}

// PaymentService /payments.
type PaymentService struct{ c *Client }

func (s *PaymentService) List(ctx context.Context, q dto.PaymentQuery) (*dto.ListResult[entity.Payment], error) {
	return Get[*dto.ListResult[entity.Payment]](ctx, s.c, pathPayments, q.Values())
}

func (s *PaymentService) Create(ctx context.Context, p *entity.Payment) (*entity.Payment, error) {
	return Post[*entity.Payment](ctx, s.c, pathPayments, p)
}

func (s *PaymentService) Get(ctx context.Context, id uint) (*entity.Payment, error) {
	return Get[*entity.Payment](ctx, s.c, idPath(pathPayments, id), nil)
}

func (s *PaymentService) Update(ctx context.Context, id uint, p *entity.Payment) (*entity.Payment, error) {
	return Put[*entity.Payment](ctx, s.c, idPath(pathPayments, id), p)
}

func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath(pathPayments, id))
	return err
}

// TaskService /tasks.
type TaskService struct{ c *Client }

func (s *TaskService) List(ctx context.Context, q dto.TaskQuery) (*dto.ListResult[entity.Task], error) {
	return Get[*dto.ListResult[entity.Task]](ctx, s.c, pathTasks, q.Values())
}

func (s *TaskService) Create(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	return Post[*entity.Task](ctx, s.c, pathTasks, t)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*entity.Task, error) {
	return Get[*entity.Task](ctx, s.c, idPath(pathTasks, id), nil)
}

func (s *TaskService) Update(ctx context.Context, id uint, t *entity.Task) (*entity.Task, error) {
	return Put[*entity.Task](ctx, s.c, idPath(pathTasks, id), t)
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath(pathTasks, id))
	return err
}
