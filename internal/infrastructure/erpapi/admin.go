package erpapi

import (
	"context"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// StatisticsService /statistics.
type StatisticsService struct{ c *Client }

func (s *StatisticsService) Overview(ctx context.Context) (*dto.OverviewStats, error) {
	return Get[*dto.OverviewStats](ctx, s.c, "/statistics/overview", nil)
}

func (s *StatisticsService) Tasks(ctx context.Context) (*dto.TaskStats, error) {
	return Get[*dto.TaskStats](ctx, s.c, "/statistics/tasks", nil)
}

func (s *StatisticsService) Payments(ctx context.Context, r dto.DateRange) (*dto.PaymentStats, error) {
	return Get[*dto.PaymentStats](ctx, s.c, "/statistics/payments", r.Values())
}

// AuditLogService registro de auditoría.
type AuditLogService struct{ c *Client }

// List GET /audit-logs.
func (s *AuditLogService) List(ctx context.Context, q dto.AuditLogQuery) (*dto.ListResult[entity.AuditLog], error) {
	return Get[*dto.ListResult[entity.AuditLog]](ctx, s.c, "/audit-logs", q.Values())
}

// Delete DELETE /admin/audit-logs/:id (super_admin).
func (s *AuditLogService) Delete(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath("/admin/audit-logs", id))
	return err
}

// Clear POST /admin/audit-logs/clear (super_admin).
func (s *AuditLogService) Clear(ctx context.Context) error {
	_, err := Post[*dto.MessageResponse](ctx, s.c, "/admin/audit-logs/clear", nil)
	return err
}

// AdminService aprobaciones y cuentas de acceso.
type AdminService struct{ c *Client }

func (s *AdminService) PendingApprovals(ctx context.Context) ([]entity.AuditLog, error) {
	return Get[[]entity.AuditLog](ctx, s.c, "/admin/approvals/pending", nil)
}

func (s *AdminService) Approve(ctx context.Context, req dto.ApprovalRequest) (*dto.MessageResponse, error) {
	return Post[*dto.MessageResponse](ctx, s.c, "/admin/approvals/approve", req)
}

func (s *AdminService) Reject(ctx context.Context, req dto.ApprovalRequest) (*dto.MessageResponse, error) {
	return Post[*dto.MessageResponse](ctx, s.c, "/admin/approvals/reject", req)
}

// AdminLogs GET /admin/audit-logs.
func (s *AdminService) AdminLogs(ctx context.Context, q dto.AuditLogQuery) (*dto.ListResult[entity.AuditLog], error) {
	return Get[*dto.ListResult[entity.AuditLog]](ctx, s.c, "/admin/audit-logs", q.Values())
}

func (s *AdminService) Users(ctx context.Context) ([]entity.AdminUser, error) {
	return Get[[]entity.AdminUser](ctx, s.c, "/admin/users", nil)
}

func (s *AdminService) CreateUser(ctx context.Context, req dto.CreateAdminUserRequest) (*entity.AdminUser, error) {
	return Post[*entity.AdminUser](ctx, s.c, "/admin/users", req)
}

func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	_, err := Delete[*dto.MessageResponse](ctx, s.c, idPath("/admin/users", id))
	return err
}

// ServicePeople GET /admin/service-people.
func (s *AdminService) ServicePeople(ctx context.Context) ([]entity.Person, error) {
	return Get[[]entity.Person](ctx, s.c, "/admin/service-people", nil)
}

func (s *AdminService) SetManager(ctx context.Context, req dto.SetManagerRequest) (*dto.MessageResponse, error) {
	return Post[*dto.MessageResponse](ctx, s.c, "/admin/set-manager", req)
}
