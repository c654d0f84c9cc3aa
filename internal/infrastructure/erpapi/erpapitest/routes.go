package erpapitest

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	pkgjwt "github.com/jhoicas/erp-admin/pkg/jwt"
)

// Today fecha de referencia de las estadísticas del backend simulado.
var Today = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func (s *Server) routes() {
	s.App.Use(s.record)

	api := s.App.Group("/api")
	api.Post("/auth/login", s.login)
	api.Get("/auth/users", s.loginUsers)
	api.Get("/customers/types", func(c *fiber.Ctx) error {
		return ok(c, []entity.CustomerType{entity.CustomerTypeLimited, entity.CustomerTypeSoleProprie, entity.CustomerTypePartnership, entity.CustomerTypeIndividual})
	})
	api.Get("/customers/credit-ratings", func(c *fiber.Ctx) error {
		return ok(c, []entity.CreditRating{entity.CreditRatingA, entity.CreditRatingB, entity.CreditRatingC, entity.CreditRatingD, entity.CreditRatingM})
	})
	api.Get("/bank-accounts/types", func(c *fiber.Ctx) error {
		return ok(c, []entity.AccountType{entity.AccountTypeBasic, entity.AccountTypeGeneral, entity.AccountTypeTemporary})
	})

	authed := api.Group("", authMiddleware(Secret))
	authed.Get("/user/me", s.me)
	authed.Post("/user/change-password", s.changePassword)

	people := authed.Group("/people")
	mount(s, people, resource[entity.Person]{
		name:  "person",
		store: s.People,
		filter: func(c *fiber.Ctx, p *entity.Person) bool {
			if v := c.Query("is_service_person"); v != "" && strconv.FormatBool(p.IsServicePerson) != v {
				return false
			}
			return contains(c.Query("keyword"), p.Name, p.Phone, p.IDCard)
		},
	})
	people.Get("/:id/customers", s.personCustomers)

	s.mountServicePersonnel(authed.Group("/service-personnel"))

	customers := authed.Group("/customers")
	mount(s, customers, resource[entity.Customer]{
		name:   "customer",
		store:  s.Customers,
		filter: s.customerFilter,
	})
	customers.Get("/:id/tasks", func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		return ok(c, s.Tasks.All(func(t *entity.Task) bool { return t.CustomerID == id }))
	})
	customers.Get("/:id/payments", func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		return ok(c, s.Payments.All(func(p *entity.Payment) bool { return p.CustomerID == id }))
	})

	mount(s, authed.Group("/agreements"), resource[entity.Agreement]{
		name:  "agreement",
		store: s.Agreements,
		filter: func(c *fiber.Ctx, a *entity.Agreement) bool {
			return matchStatus(c, string(a.Status)) && matchCustomer(c, a.CustomerID) && contains(c.Query("keyword"), a.AgreementNumber)
		},
		enrich: func(a *entity.Agreement) { a.Customer = s.customerRef(a.CustomerID) },
	})
	mount(s, authed.Group("/payments"), resource[entity.Payment]{
		name:  "payment",
		store: s.Payments,
		filter: func(c *fiber.Ctx, p *entity.Payment) bool {
			return matchCustomer(c, p.CustomerID) && inRange(p.PaymentDate, c.Query("start_date"), c.Query("end_date"))
		},
		enrich: func(p *entity.Payment) { p.Customer = s.customerRef(p.CustomerID) },
	})
	mount(s, authed.Group("/tasks"), resource[entity.Task]{
		name:  "task",
		store: s.Tasks,
		filter: func(c *fiber.Ctx, t *entity.Task) bool {
			return matchStatus(c, string(t.Status)) && matchCustomer(c, t.CustomerID) && contains(c.Query("keyword"), t.Title, t.Description)
		},
		enrich: func(t *entity.Task) { t.Customer = s.customerRef(t.CustomerID) },
	})

	stats := authed.Group("/statistics")
	stats.Get("/overview", s.overview)
	stats.Get("/tasks", s.taskStats)
	stats.Get("/payments", s.paymentStats)

	authed.Get("/audit-logs", s.auditLogs)

	admin := authed.Group("/admin", requireRole(entity.RoleSuperAdmin, entity.RoleManager))
	admin.Get("/approvals/pending", func(c *fiber.Ctx) error {
		return ok(c, s.AuditLogs.All(func(l *entity.AuditLog) bool { return l.Pending() }))
	})
	admin.Post("/approvals/approve", s.decide(entity.AuditApproved))
	admin.Post("/approvals/reject", s.decide(entity.AuditRejected))
	admin.Get("/audit-logs", s.auditLogs)
	admin.Delete("/audit-logs/:id", requireRole(entity.RoleSuperAdmin), func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		if !s.AuditLogs.Delete(id) {
			return fail(c, 404, "Audit log not found")
		}
		return ok(c, dto.MessageResponse{Message: "Audit log deleted"})
	})
	admin.Post("/audit-logs/clear", requireRole(entity.RoleSuperAdmin), func(c *fiber.Ctx) error {
		s.AuditLogs.Reset()
		return ok(c, dto.MessageResponse{Message: "Audit logs cleared"})
	})
	admin.Get("/users", func(c *fiber.Ctx) error { return ok(c, s.Users.All(nil)) })
	admin.Post("/users", requireRole(entity.RoleSuperAdmin), s.createUser)
	admin.Delete("/users/:id", requireRole(entity.RoleSuperAdmin), func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		if !s.Users.Delete(id) {
			return fail(c, 404, "User not found")
		}
		return ok(c, dto.MessageResponse{Message: "User deleted"})
	})
	admin.Get("/service-people", func(c *fiber.Ctx) error {
		return ok(c, s.People.All(func(p *entity.Person) bool { return p.IsServicePerson }))
	})
	admin.Post("/set-manager", requireRole(entity.RoleSuperAdmin), s.setManager)

	authed.Get("/templates/:kind", s.download("模板"))
	authed.Get("/export/:kind", s.download("导出"))
	authed.Post("/import/:kind", s.importFile)
}

// ── CRUD genérico ─────────────────────────────────────────────────────────────

type resource[T any] struct {
	name   string
	store  *Store[T]
	filter func(c *fiber.Ctx, v *T) bool
	enrich func(v *T)
}

// mount registra list/get/create/update/delete. Las altas y cambios de una
// persona de servicio quedan en auditoría pendientes de aprobación.
func mount[T any](s *Server, r fiber.Router, res resource[T]) {
	r.Get("", func(c *fiber.Ctx) error {
		return list(c, res.store.All(func(v *T) bool { return res.filter == nil || res.filter(c, v) }))
	})
	r.Get("/:id", func(c *fiber.Ctx) error {
		id, valid := paramID(c)
		if !valid {
			return fail(c, 400, "Invalid ID")
		}
		v, found := res.store.Get(id)
		if !found {
			return fail(c, 404, res.name+" not found")
		}
		return ok(c, v)
	})
	r.Post("", func(c *fiber.Ctx) error {
		var v T
		if err := c.BodyParser(&v); err != nil {
			return fail(c, 400, "Invalid request: "+err.Error())
		}
		if res.enrich != nil {
			res.enrich(&v)
		}
		if roleOf(c) == entity.RoleServicePerson {
			return s.queueApproval(c, "create", res.name, nil, nil, v, func() { res.store.Add(v) })
		}
		return ok(c, res.store.Add(v))
	})
	r.Put("/:id", func(c *fiber.Ctx) error {
		id, valid := paramID(c)
		if !valid {
			return fail(c, 400, "Invalid ID")
		}
		old, found := res.store.Get(id)
		if !found {
			return fail(c, 404, res.name+" not found")
		}
		var v T
		if err := c.BodyParser(&v); err != nil {
			return fail(c, 400, "Invalid request: "+err.Error())
		}
		if res.enrich != nil {
			res.enrich(&v)
		}
		if roleOf(c) == entity.RoleServicePerson {
			return s.queueApproval(c, "update", res.name, &id, old, v, func() { res.store.Put(id, v) })
		}
		updated, _ := res.store.Put(id, v)
		return ok(c, updated)
	})
	r.Delete("/:id", requireRole(entity.RoleSuperAdmin, entity.RoleServicePerson), func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		if roleOf(c) == entity.RoleServicePerson {
			old, found := res.store.Get(id)
			if !found {
				return fail(c, 404, res.name+" not found")
			}
			return s.queueApproval(c, "delete", res.name, &id, old, nil, func() { res.store.Delete(id) })
		}
		if !res.store.Delete(id) {
			return fail(c, 404, res.name+" not found")
		}
		return ok(c, dto.MessageResponse{Message: res.name + " deleted successfully"})
	})
}

// queueApproval registra la operación como pendiente; apply se ejecuta al aprobar.
func (s *Server) queueApproval(c *fiber.Ctx, action, resourceType string, id *uint, oldValue, newValue any, apply func()) error {
	log := s.AuditLogs.Add(entity.AuditLog{
		UserID:       userIDOf(c),
		UserType:     roleOf(c),
		ActionType:   action,
		ResourceType: resourceType,
		ResourceID:   id,
		OldValue:     snapshot(oldValue),
		NewValue:     snapshot(newValue),
		Status:       entity.AuditPending,
		CreatedAt:    Today,
		UpdatedAt:    Today,
	})
	s.mu.Lock()
	if s.pending == nil {
		s.pending = map[uint]func(){}
	}
	s.pending[log.ID] = apply
	s.mu.Unlock()
	return ok(c, dto.ApprovalNotice{RequiresApproval: true, Message: "操作已提交，等待管理员审批"})
}

func (s *Server) decide(status entity.AuditStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.ApprovalRequest
		if err := c.BodyParser(&req); err != nil || req.LogID == 0 {
			return fail(c, 400, "Invalid request")
		}
		log, found := s.AuditLogs.Get(req.LogID)
		if !found {
			return fail(c, 404, "Audit log not found")
		}
		if !log.Pending() {
			return fail(c, 400, "Audit log already processed")
		}
		approver := userIDOf(c)
		now := Today
		log.Status, log.ApprovedBy, log.ApprovedAt, log.Reason = status, &approver, &now, req.Reason
		s.AuditLogs.Put(log.ID, log)

		s.mu.Lock()
		apply := s.pending[log.ID]
		delete(s.pending, log.ID)
		s.mu.Unlock()
		if status == entity.AuditApproved && apply != nil {
			apply()
			return ok(c, dto.MessageResponse{Message: "Operation approved"})
		}
		return ok(c, dto.MessageResponse{Message: "Operation rejected"})
	}
}

func snapshot(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ── Filtros ───────────────────────────────────────────────────────────────────

func contains(keyword string, fields ...string) bool {
	if keyword == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(f, keyword) {
			return true
		}
	}
	return false
}

func matchStatus(c *fiber.Ctx, status string) bool {
	want := c.Query("status")
	return want == "" || want == status
}

func matchCustomer(c *fiber.Ctx, customerID uint) bool {
	want := c.Query("customer_id")
	return want == "" || want == strconv.FormatUint(uint64(customerID), 10)
}

func inRange(t time.Time, start, end string) bool {
	day := t.Format("2006-01-02")
	return (start == "" || day >= start) && (end == "" || day <= end)
}

func (s *Server) customerFilter(c *fiber.Ctx, cu *entity.Customer) bool {
	if !contains(c.Query("keyword"), cu.Name, cu.TaxNumber) {
		return false
	}
	if rep := c.Query("representative"); rep != "" {
		if cu.RepresentativeID == nil || !s.personNamed(*cu.RepresentativeID, rep) {
			return false
		}
	}
	if inv := c.Query("investor"); inv != "" && !s.anyNamed(cu.InvestorIDs, inv) {
		return false
	}
	if sp := c.Query("service_person"); sp != "" && !s.anyNamed(cu.ServicePersonIDs, sp) {
		return false
	}
	return true
}

func (s *Server) personNamed(id uint, name string) bool {
	p, found := s.People.Get(id)
	return found && strings.Contains(p.Name, name)
}

func (s *Server) anyNamed(ids entity.IDList, name string) bool {
	for _, id := range ids {
		if s.personNamed(id, name) {
			return true
		}
	}
	return false
}

func (s *Server) customerRef(id uint) *entity.CustomerRef {
	cu, found := s.Customers.Get(id)
	if !found {
		return nil
	}
	r := cu.Ref()
	return &r
}

// ── Personas ──────────────────────────────────────────────────────────────────

func (s *Server) personCustomers(c *fiber.Ctx) error {
	id, _ := paramID(c)
	p, found := s.People.Get(id)
	if !found {
		return fail(c, 404, "Person not found")
	}
	byIDs := func(ids entity.IDList) []entity.Customer {
		return s.Customers.All(func(cu *entity.Customer) bool { return ids.Contains(cu.ID) })
	}
	return ok(c, entity.PersonCustomers{
		Representative: byIDs(p.RepresentativeCustomerIDs),
		Investor:       byIDs(p.InvestorCustomerIDs),
		Service:        byIDs(p.ServiceCustomerIDs),
	})
}

func toServicePersonnel(p entity.Person) entity.ServicePersonnel {
	return entity.ServicePersonnel{
		ID:                 p.ID,
		Type:               entity.ServicePersonType,
		Name:               p.Name,
		Phone:              p.Phone,
		IDCard:             p.IDCard,
		ServiceCustomerIDs: p.ServiceCustomerIDs,
		CustomerCount:      len(p.ServiceCustomerIDs),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (s *Server) mountServicePersonnel(r fiber.Router) {
	r.Get("", func(c *fiber.Ctx) error {
		var out []entity.ServicePersonnel
		for _, p := range s.People.All(func(p *entity.Person) bool {
			return p.IsServicePerson && contains(c.Query("keyword"), p.Name, p.Phone)
		}) {
			out = append(out, toServicePersonnel(p))
		}
		return list(c, out)
	})
	r.Get("/:id", func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		p, found := s.People.Get(id)
		if !found || !p.IsServicePerson {
			return fail(c, 404, "Service personnel not found")
		}
		return ok(c, toServicePersonnel(p))
	})
	save := func(c *fiber.Ctx, id uint) error {
		var in entity.ServicePersonnel
		if err := c.BodyParser(&in); err != nil {
			return fail(c, 400, "Invalid request: "+err.Error())
		}
		p := entity.Person{IsServicePerson: true, Name: in.Name, Phone: in.Phone, IDCard: in.IDCard, ServiceCustomerIDs: in.ServiceCustomerIDs}
		if id == 0 {
			return ok(c, toServicePersonnel(s.People.Add(p)))
		}
		updated, found := s.People.Put(id, p)
		if !found {
			return fail(c, 404, "Service personnel not found")
		}
		return ok(c, toServicePersonnel(updated))
	}
	r.Post("", func(c *fiber.Ctx) error { return save(c, 0) })
	r.Put("/:id", func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		return save(c, id)
	})
	r.Delete("/:id", requireRole(entity.RoleSuperAdmin, entity.RoleManager), func(c *fiber.Ctx) error {
		id, _ := paramID(c)
		if !s.People.Delete(id) {
			return fail(c, 404, "Service personnel not found")
		}
		return ok(c, dto.MessageResponse{Message: "Service personnel deleted"})
	})
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (s *Server) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request: "+err.Error())
	}
	if req.PersonID != nil {
		p, found := s.People.Get(*req.PersonID)
		if !found {
			return fail(c, 404, "Service person not found")
		}
		if !p.IsServicePerson {
			return fail(c, 400, "Not a service person")
		}
		return s.issue(c, p.ID, p.Name, entity.RoleServicePerson, &p.ID, false)
	}

	s.mu.Lock()
	acc, found := s.logins[req.Username]
	s.mu.Unlock()
	if !found || acc.password != req.Password {
		return fail(c, 401, "用户名或密码错误")
	}
	u, _ := s.Users.Get(acc.userID)
	return s.issue(c, u.ID, u.Username, u.Role, u.PersonID, u.MustChangePassword)
}

func (s *Server) issue(c *fiber.Ctx, userID uint, username, role string, personID *uint, mustChange bool) error {
	tok, err := pkgjwt.Generate(Secret, userID, username, role, personID, 24*time.Hour)
	if err != nil {
		return fail(c, 500, "Failed to generate token")
	}
	return ok(c, dto.LoginResponse{Token: tok, UserID: userID, Username: username, Role: role, MustChangePassword: mustChange})
}

func (s *Server) loginUsers(c *fiber.Ctx) error {
	var out []dto.LoginUser
	for _, u := range s.Users.All(nil) {
		out = append(out, dto.LoginUser{ID: u.ID, Username: u.Username, Role: u.Role, PersonID: u.PersonID})
	}
	for _, p := range s.People.All(func(p *entity.Person) bool { return p.IsServicePerson }) {
		pid := p.ID
		out = append(out, dto.LoginUser{ID: p.ID, Username: p.Name, Name: p.Name, Role: entity.RoleServicePerson, PersonID: &pid})
	}
	return ok(c, out)
}

func (s *Server) me(c *fiber.Ctx) error {
	id := userIDOf(c)
	if roleOf(c) == entity.RoleServicePerson {
		p, found := s.People.Get(id)
		if !found {
			return fail(c, 404, "User not found")
		}
		return ok(c, entity.UserInfo{ID: p.ID, Username: p.Name, Name: p.Name, Role: entity.RoleServicePerson, IsServicePerson: true, Person: &p})
	}
	u, found := s.Users.Get(id)
	if !found {
		return fail(c, 404, "User not found")
	}
	info := entity.UserInfo{
		ID:                 u.ID,
		Username:           u.Username,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		IsManager:          entity.HasRole(u.Role, entity.RoleManager),
	}
	if u.PersonID != nil {
		if p, found := s.People.Get(*u.PersonID); found {
			info.Person, info.Name = &p, p.Name
		}
	}
	return ok(c, info)
}

func (s *Server) changePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request: "+err.Error())
	}
	if len(req.NewPassword) < 6 {
		return fail(c, 400, "新密码至少6位")
	}
	u, found := s.Users.Get(userIDOf(c))
	if !found {
		return fail(c, 400, "服务人员无需修改密码")
	}
	s.mu.Lock()
	acc := s.logins[u.Username]
	if acc.password != req.OldPassword {
		s.mu.Unlock()
		return fail(c, 400, "原密码错误")
	}
	acc.password = req.NewPassword
	s.logins[u.Username] = acc
	s.mu.Unlock()

	now := Today
	u.MustChangePassword, u.LastPasswordChange = false, &now
	s.Users.Put(u.ID, u)
	return ok(c, dto.MessageResponse{Message: "Password changed successfully"})
}

// ── Admin ─────────────────────────────────────────────────────────────────────

func (s *Server) auditLogs(c *fiber.Ctx) error {
	return list(c, s.AuditLogs.All(func(l *entity.AuditLog) bool { return matchStatus(c, string(l.Status)) }))
}

func (s *Server) createUser(c *fiber.Ctx) error {
	var req dto.CreateAdminUserRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
		return fail(c, 400, "Invalid request")
	}
	s.mu.Lock()
	_, exists := s.logins[req.Username]
	s.mu.Unlock()
	if exists {
		return fail(c, 400, "Username already exists")
	}
	pid := req.PersonID
	u := s.Users.Add(entity.AdminUser{Username: req.Username, Role: entity.RoleManager, PersonID: &pid, MustChangePassword: true, CreatedAt: Today, UpdatedAt: Today})
	s.mu.Lock()
	s.logins[u.Username] = account{userID: u.ID, password: req.Password}
	s.mu.Unlock()
	return ok(c, u)
}

func (s *Server) setManager(c *fiber.Ctx) error {
	var req dto.SetManagerRequest
	if err := c.BodyParser(&req); err != nil || req.PersonID == 0 {
		return fail(c, 400, "Invalid request")
	}
	if _, found := s.People.Get(req.PersonID); !found {
		return fail(c, 404, "Person not found")
	}
	role := entity.RoleServicePerson
	if req.IsManager {
		role = entity.RoleManager
	}
	users := s.Users.All(func(u *entity.AdminUser) bool { return u.PersonID != nil && *u.PersonID == req.PersonID })
	if len(users) == 0 {
		return fail(c, 404, "该人员没有登录账号")
	}
	u := users[0]
	u.Role = role
	s.Users.Put(u.ID, u)
	return ok(c, dto.MessageResponse{Message: "Role updated"})
}

// ── Estadísticas ──────────────────────────────────────────────────────────────

func (s *Server) overview(c *fiber.Ctx) error {
	var monthly, yearly decimal.Decimal
	for _, p := range s.Payments.All(nil) {
		if p.PaymentDate.Year() != Today.Year() {
			continue
		}
		yearly = yearly.Add(p.Amount)
		if p.PaymentDate.Month() == Today.Month() {
			monthly = monthly.Add(p.Amount)
		}
	}
	return ok(c, dto.OverviewStats{
		CustomerCount:        int64(len(s.Customers.All(nil))),
		PendingTaskCount:     int64(len(s.Tasks.All(func(t *entity.Task) bool { return t.Status == entity.TaskPending }))),
		ActiveAgreementCount: int64(len(s.Agreements.All(func(a *entity.Agreement) bool { return a.Status == entity.AgreementActive }))),
		MonthlyPayment:       monthly,
		YearlyPayment:        yearly,
	})
}

func (s *Server) taskStats(c *fiber.Ctx) error {
	var st dto.TaskStats
	for _, t := range s.Tasks.All(nil) {
		switch t.Status {
		case entity.TaskPending:
			st.Pending++
		case entity.TaskInProgress:
			st.InProgress++
		case entity.TaskCompleted:
			st.Completed++
		}
	}
	return ok(c, st)
}

func (s *Server) paymentStats(c *fiber.Ctx) error {
	var st dto.PaymentStats
	for _, p := range s.Payments.All(func(p *entity.Payment) bool {
		return inRange(p.PaymentDate, c.Query("start_date"), c.Query("end_date"))
	}) {
		st.TotalAmount = st.TotalAmount.Add(p.Amount)
		st.Count++
	}
	return ok(c, st)
}

// ── Ficheros ──────────────────────────────────────────────────────────────────

func (s *Server) download(label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := c.Params("kind")
		s.mu.Lock()
		data, found := s.Templates[kind]
		s.mu.Unlock()
		if !found {
			return fail(c, 400, "Invalid type")
		}
		name := fmt.Sprintf("%s_%s.xlsx", kind, label)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(name))
		return c.Send(data)
	}
}

func (s *Server) importFile(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if kind != string(dto.KindPeople) && kind != string(dto.KindCustomers) {
		return fail(c, 400, "Invalid type")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, 400, "请选择要导入的文件")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, 500, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, 500, err.Error())
	}
	s.mu.Lock()
	s.Imports = append(s.Imports, Upload{Kind: kind, Strategy: c.FormValue("strategy"), Filename: fh.Filename, Data: data})
	s.mu.Unlock()

	if len(data) == 0 {
		return ok(c, dto.ImportResult{Total: 1, Failed: 1, Errors: []dto.ImportError{{Row: 2, Column: "A", Message: "文件为空"}}})
	}
	return ok(c, dto.ImportResult{Total: 1, Success: 1, Errors: []dto.ImportError{}})
}
