package erpapitest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// Cuentas sembradas.
const (
	AdminUsername   = "admin"
	AdminPassword   = "admin123"
	ManagerUsername = "wangfang"
	ManagerPassword = "wang123"
	// ServicePersonID persona de servicio que entra sin contraseña.
	ServicePersonID uint = 3
)

func (s *Server) seed() {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	s.People.Add(entity.Person{Name: "张伟", Phone: "13800000001", IDCard: "500101199001010011", RepresentativeCustomerIDs: entity.IDList{1}, InvestorCustomerIDs: entity.IDList{1}, CreatedAt: now, UpdatedAt: now})
	s.People.Add(entity.Person{Name: "王芳", Phone: "13800000002", IDCard: "500101199202020022", CreatedAt: now, UpdatedAt: now})
	s.People.Add(entity.Person{Name: "李华", Phone: "13800000003", IDCard: "500101199303030033", IsServicePerson: true, ServiceCustomerIDs: entity.IDList{1, 2}, CreatedAt: now, UpdatedAt: now})

	rep := uint(1)
	s.Customers.Add(entity.Customer{Name: "重庆星辰科技有限公司", Phone: "023-61234567", TaxNumber: "91500000MA5U000001", Type: entity.CustomerTypeLimited, RepresentativeID: &rep, InvestorIDs: entity.IDList{1}, ServicePersonIDs: entity.IDList{3}, TaxpayerType: entity.TaxpayerSmall, CreditRating: entity.CreditRatingB, CreatedAt: now, UpdatedAt: now})
	s.Customers.Add(entity.Customer{Name: "渝北区老李餐馆", Phone: "023-67654321", TaxNumber: "92500112MA5U000002", Type: entity.CustomerTypeIndividual, ServicePersonIDs: entity.IDList{3}, CreatedAt: now, UpdatedAt: now})

	ref := func(id uint) *entity.CustomerRef {
		c, _ := s.Customers.Get(id)
		r := c.Ref()
		return &r
	}
	s.Agreements.Add(entity.Agreement{CustomerID: 1, AgreementNumber: "XY-2024-001", StartDate: now, EndDate: now.AddDate(1, 0, -1), FeeType: entity.FeeMonthly, Amount: decimal.NewFromInt(800), Status: entity.AgreementActive, Customer: ref(1), CreatedAt: now, UpdatedAt: now})
	s.Agreements.Add(entity.Agreement{CustomerID: 2, AgreementNumber: "XY-2023-017", StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(0, 0, -1), FeeType: entity.FeeYearly, Amount: decimal.NewFromInt(3600), Status: entity.AgreementExpired, Customer: ref(2), CreatedAt: now, UpdatedAt: now})

	agreementID := uint(1)
	s.Payments.Add(entity.Payment{CustomerID: 1, AgreementID: &agreementID, Amount: decimal.RequireFromString("800.00"), PaymentDate: now, PaymentMethod: entity.PaymentTransfer, Period: "2024-03", Customer: ref(1), CreatedAt: now, UpdatedAt: now})
	s.Payments.Add(entity.Payment{CustomerID: 2, Amount: decimal.RequireFromString("1200.50"), PaymentDate: now.AddDate(0, -1, 0), PaymentMethod: entity.PaymentCash, Period: "2024-02", Customer: ref(2), CreatedAt: now, UpdatedAt: now})

	due := now.AddDate(0, 0, 14)
	s.Tasks.Add(entity.Task{CustomerID: 1, Title: "三月增值税申报", Status: entity.TaskPending, DueDate: &due, Customer: ref(1), CreatedAt: now, UpdatedAt: now})
	s.Tasks.Add(entity.Task{CustomerID: 1, Title: "年报公示", Status: entity.TaskInProgress, Customer: ref(1), CreatedAt: now, UpdatedAt: now})
	s.Tasks.Add(entity.Task{CustomerID: 2, Title: "社保增员", Status: entity.TaskCompleted, Customer: ref(2), CreatedAt: now, UpdatedAt: now})

	manager := uint(2)
	admin := s.Users.Add(entity.AdminUser{Username: AdminUsername, Role: entity.RoleSuperAdmin, CreatedAt: now, UpdatedAt: now})
	mgr := s.Users.Add(entity.AdminUser{Username: ManagerUsername, Role: entity.RoleManager, PersonID: &manager, MustChangePassword: true, CreatedAt: now, UpdatedAt: now})
	s.logins[AdminUsername] = account{userID: admin.ID, password: AdminPassword}
	s.logins[ManagerUsername] = account{userID: mgr.ID, password: ManagerPassword}
}
