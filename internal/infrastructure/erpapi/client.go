// Package erpapi es el cliente tipado del backend REST del ERP.
//
// Todas las respuestas llegan en el sobre {code, data, message}: code 0 entrega
// data ya desempaquetado; cualquier otro código es un fallo de aplicación. Los
// fallos de transporte se traducen a domain.TransportError y un 401 cierra la
// sesión local y redirige a /login.
package erpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	"github.com/jhoicas/erp-admin/pkg/config"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

const (
	contentTypeJSON   = "application/json;charset=UTF-8"
	headerRequestID   = "X-Request-ID"
	maxEnvelopeBytes  = 8 << 20
	maxDownloadBytes  = 256 << 20
	defaultRetryWait  = 200 * time.Millisecond
	defaultRetryLimit = 2 * time.Second
)

// Deps colaboradores del cliente. Los nil se sustituyen por implementaciones nulas.
type Deps struct {
	Session   ports.SessionStore
	Notifier  ports.Notifier
	Navigator ports.Navigator
	Logger    *logger.Logger
	// HTTPClient permite inyectar un transporte propio (tests); por defecto go-retryablehttp.
	HTTPClient *http.Client
}

// Client envoltorio HTTP con base path y timeout fijos.
type Client struct {
	endpoint string
	maxBlob  int64
	http     *http.Client
	session  ports.SessionStore
	notify   ports.Notifier
	nav      ports.Navigator
	log      *logger.Logger
}

// NewClient construye el cliente. Por defecto no reintenta: RetryMax > 0 sólo
// reintenta errores de red, nunca códigos de estado. Activa
// entity.NumericDecimals porque los cuerpos llevan importes.
func NewClient(cfg config.APIConfig, deps Deps) *Client {
	entity.NumericDecimals()
	c := &Client{
		endpoint: cfg.Endpoint(),
		maxBlob:  cfg.MaxDownloadBytes,
		http:     deps.HTTPClient,
		session:  deps.Session,
		notify:   deps.Notifier,
		nav:      deps.Navigator,
		log:      deps.Logger,
	}
	if c.maxBlob <= 0 {
		c.maxBlob = maxDownloadBytes
	}
	if c.http == nil {
		c.http = newRetryClient(cfg)
	}
	if c.session == nil {
		c.session = noSession{}
	}
	if c.notify == nil {
		c.notify = ports.NopNotifier{}
	}
	if c.nav == nil {
		c.nav = ports.NopNavigator{}
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	return c
}

func newRetryClient(cfg config.APIConfig) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = defaultRetryWait
	rc.RetryWaitMax = defaultRetryLimit
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}
	return rc.StandardClient()
}

// Endpoint raíz de la API (BaseURL + BasePath).
func (c *Client) Endpoint() string { return c.endpoint }

// Notifier canal de avisos del cliente.
func (c *Client) Notifier() ports.Notifier { return c.notify }

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// send ejecuta la petición con los interceptores de salida: token, request id y cabeceras.
// El llamador cierra el cuerpo de la respuesta.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	u := c.endpoint + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("erpapi: crear petición: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)
	if r.body != nil {
		ct := r.contentType
		if ct == "" {
			ct = contentTypeJSON
		}
		req.Header.Set("Content-Type", ct)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	ev := c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Str("request_id", reqID).
		Dur("elapsed", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("api: error de red")
		return nil, c.networkError(err)
	}
	ev.Int("status", resp.StatusCode).Msg("api")
	return resp, nil
}

// call petición JSON completa: envía, valida el estado y desempaqueta el sobre.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, bool, error) {
	r := request{method: method, path: path, query: query}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, false, fmt.Errorf("erpapi: serializar cuerpo: %w", err)
		}
		r.body = b
	}
	return c.roundTrip(ctx, r)
}

func (c *Client) roundTrip(ctx context.Context, r request) (json.RawMessage, bool, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	raw, err := c.readBody(resp, maxEnvelopeBytes)
	if err != nil {
		return nil, false, err
	}
	data, pending, err := c.unwrap(raw)
	if pending {
		recordApproval(ctx, data)
	}
	return data, pending, err
}

// readBody lee como mucho limit bytes y valida el estado. Un cuerpo 2xx más
// largo que limit es un error, nunca se trunca.
func (c *Client) readBody(resp *http.Response, limit int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, c.networkError(err)
	}
	oversized := int64(len(raw)) > limit
	if oversized {
		raw = raw[:limit]
	}
	if err := c.checkStatus(resp.StatusCode, raw); err != nil {
		return nil, err
	}
	if oversized {
		c.log.Warn().Int64("limit", limit).Msg("api: respuesta demasiado grande")
		c.notify.Error(msgResponseTooLarge)
		return nil, fmt.Errorf("%w: respuesta supera %d bytes", domain.ErrInvalidResponse, limit)
	}
	return raw, nil
}

// Get GET path?query y decodifica data en T.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return decode[T](c.call(ctx, http.MethodGet, path, query, nil))
}

// Post POST path con body JSON.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.call(ctx, http.MethodPost, path, nil, body))
}

// Put PUT path con body JSON.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return decode[T](c.call(ctx, http.MethodPut, path, nil, body))
}

// Delete DELETE path.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return decode[T](c.call(ctx, http.MethodDelete, path, nil, nil))
}

// decode convierte data en T. Una respuesta de aprobación pendiente o un data
// vacío devuelven el valor cero de T sin error; WithApproval distingue ambos casos.
func decode[T any](data json.RawMessage, pending bool, err error) (T, error) {
	var out T
	if err != nil || pending || isEmpty(data) {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, invalidResponse(err)
	}
	return out, nil
}

func isEmpty(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "null"
}

// noSession almacén vacío para clientes sin sesión persistente.
type noSession struct{}

func (noSession) Token() string                   { return "" }
func (noSession) SetToken(string) error           { return nil }
func (noSession) User() (*entity.UserInfo, error) { return nil, nil }
func (noSession) SetUser(*entity.UserInfo) error  { return nil }
func (noSession) Clear() error                    { return nil }
