// Package erpapitest levanta un backend ERP en memoria para tests: mismas rutas,
// mismo sobre {code, data, message}, JWT de verdad y flujo de aprobación para
// personas de servicio.
package erpapitest

import (
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/erp-admin/internal/domain/entity"
	pkgjwt "github.com/jhoicas/erp-admin/pkg/jwt"
)

// Secret firma de los tokens emitidos por el backend simulado.
const Secret = "erpapitest-secret"

// Locals keys.
const (
	localUserID   = "user_id"
	localRole     = "role"
	localPersonID = "person_id"
)

// Request petición observada por el servidor.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	ContentType   string
}

type fault struct {
	status  int
	code    int
	message string
}

// Server backend simulado.
type Server struct {
	*httptest.Server
	App *fiber.App

	mu       sync.Mutex
	requests []Request
	faults   []fault
	logins   map[string]account
	pending  map[uint]func()

	People     *Store[entity.Person]
	Customers  *Store[entity.Customer]
	Agreements *Store[entity.Agreement]
	Payments   *Store[entity.Payment]
	Tasks      *Store[entity.Task]
	AuditLogs  *Store[entity.AuditLog]
	Users      *Store[entity.AdminUser]

	// Templates contenido devuelto por /templates/:kind y /export/:kind.
	Templates map[string][]byte
	// Imports ficheros recibidos por /import/:kind.
	Imports []Upload
}

// Upload fichero recibido por /import/:kind.
type Upload struct {
	Kind     string
	Strategy string
	Filename string
	Data     []byte
}

type account struct {
	userID   uint
	password string
}

// New arranca el servidor con datos de ejemplo y lo cierra al terminar el test.
func New(t testing.TB) *Server {
	t.Helper()
	entity.NumericDecimals()
	s := newServer()
	s.Server = httptest.NewServer(adaptor.FiberApp(s.App))
	t.Cleanup(s.Close)
	return s
}

func newServer() *Server {
	s := &Server{
		logins:     map[string]account{},
		People:     NewStore(func(p *entity.Person) *uint { return &p.ID }),
		Customers:  NewStore(func(c *entity.Customer) *uint { return &c.ID }),
		Agreements: NewStore(func(a *entity.Agreement) *uint { return &a.ID }),
		Payments:   NewStore(func(p *entity.Payment) *uint { return &p.ID }),
		Tasks:      NewStore(func(t *entity.Task) *uint { return &t.ID }),
		AuditLogs:  NewStore(func(l *entity.AuditLog) *uint { return &l.ID }),
		Users:      NewStore(func(u *entity.AdminUser) *uint { return &u.ID }),
		Templates: map[string][]byte{
			"people":    []byte("PK-people-template"),
			"customers": []byte("PK-customers-template"),
		},
	}
	s.App = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fail(c, fiber.StatusInternalServerError, err.Error())
		},
	})
	s.seed()
	s.routes()
	return s
}

// APIURL raíz de la API (incluye /api).
func (s *Server) APIURL() string { return s.URL + "/api" }

// Token firma un token como lo haría /auth/login.
func (s *Server) Token(t testing.TB, userID uint, username, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(Secret, userID, username, role, nil, time.Hour)
	if err != nil {
		t.Fatalf("erpapitest: firmar token: %v", err)
	}
	return tok
}

// FailNext hace que la siguiente petición responda con el estado HTTP dado.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{status: status, message: message})
}

// FailNextCode hace que la siguiente petición responda 200 con code != 0.
func (s *Server) FailNextCode(code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{status: fiber.StatusOK, code: code, message: message})
}

// Requests peticiones recibidas en orden.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest última petición recibida.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// ImportedFiles copia de los ficheros importados.
func (s *Server) ImportedFiles() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.Imports))
	copy(out, s.Imports)
	return out
}

// record y faults se ejecutan antes de cualquier ruta.
func (s *Server) record(c *fiber.Ctx) error {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        c.Method(),
		Path:          c.Path(),
		Query:         string(c.Request().URI().QueryString()),
		Authorization: c.Get(fiber.HeaderAuthorization),
		RequestID:     c.Get("X-Request-ID"),
		ContentType:   c.Get(fiber.HeaderContentType),
	})
	var f *fault
	if len(s.faults) > 0 {
		f = &s.faults[0]
		s.faults = s.faults[1:]
	}
	s.mu.Unlock()

	if f == nil {
		return c.Next()
	}
	if f.code != 0 {
		return fail(c, f.code, f.message)
	}
	return c.Status(f.status).JSON(fiber.Map{"code": f.status, "message": f.message})
}

// ── Sobre ─────────────────────────────────────────────────────────────────────

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(envelope{Code: 0, Message: "success", Data: data})
}

// fail error de aplicación: HTTP 200 con code != 0, como el backend real.
func fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Code: code, Message: message})
}

func list[T any](c *fiber.Ctx, items []T) error {
	total := len(items)
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	if items == nil {
		items = []T{}
	}
	return ok(c, fiber.Map{"total": total, "items": items})
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// authMiddleware valida el Bearer token y deja usuario y rol en Locals.
func authMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Code: 401, Message: "Authorization header required"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Code: 401, Message: "Invalid authorization format"})
		}
		claims, err := pkgjwt.Parse(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(envelope{Code: 401, Message: "Invalid or expired token"})
		}
		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		c.Locals(localPersonID, claims.PersonID)
		return c.Next()
	}
}

// requireRole 403 si el rol del token no está entre los permitidos.
func requireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := roleOf(c)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(envelope{Code: 403, Message: "Forbidden: insufficient permissions"})
	}
}

func roleOf(c *fiber.Ctx) string {
	s, _ := c.Locals(localRole).(string)
	return s
}

func userIDOf(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err == nil
}

// ── Store ─────────────────────────────────────────────────────────────────────

// Store colección en memoria indexada por ID.
type Store[T any] struct {
	mu    sync.Mutex
	items map[uint]T
	next  uint
	id    func(*T) *uint
}

// NewStore crea la colección; id devuelve el puntero al campo ID.
func NewStore[T any](id func(*T) *uint) *Store[T] {
	return &Store[T]{items: map[uint]T{}, next: 1, id: id}
}

// Add asigna ID y guarda.
func (st *Store[T]) Add(v T) T {
	st.mu.Lock()
	defer st.mu.Unlock()
	*st.id(&v) = st.next
	st.next++
	st.items[*st.id(&v)] = v
	return v
}

// Put reemplaza el elemento id; false si no existe.
func (st *Store[T]) Put(id uint, v T) (T, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.items[id]; !found {
		return v, false
	}
	*st.id(&v) = id
	st.items[id] = v
	return v, true
}

// Get devuelve el elemento id.
func (st *Store[T]) Get(id uint) (T, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	v, found := st.items[id]
	return v, found
}

// Delete elimina el elemento id.
func (st *Store[T]) Delete(id uint) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.items[id]; !found {
		return false
	}
	delete(st.items, id)
	return true
}

// All elementos ordenados por ID que cumplen match (nil = todos).
func (st *Store[T]) All(match func(*T) bool) []T {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]T, 0, len(st.items))
	for _, v := range st.items {
		if match == nil || match(&v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *st.id(&out[i]) < *st.id(&out[j]) })
	return out
}

// Reset vacía la colección.
func (st *Store[T]) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.items = map[uint]T{}
	st.next = 1
}
