package erpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain"
)

// Mensajes mostrados al operador cuando el backend no aporta uno.
const (
	msgRequestFailed    = "请求失败"
	msgNetworkError     = "网络错误"
	msgInvalidResponse  = "服务器响应格式错误"
	msgResponseTooLarge = "服务器响应过大"
	msgSessionExpired   = "登录已过期，请重新登录"
	msgPendingApproval  = "操作已提交，等待管理员审批"
)

// Envelope sobre uniforme de todas las respuestas del backend.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// unwrap aplica el interceptor de respuesta sobre un cuerpo 2xx.
// El booleano indica que la operación quedó pendiente de aprobación.
func (c *Client) unwrap(raw []byte) (json.RawMessage, bool, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.notify.Error(msgInvalidResponse)
		return nil, false, invalidResponse(err)
	}
	if env.Code != 0 {
		msg := env.Message
		if msg == "" {
			msg = msgRequestFailed
		}
		c.notify.Error(msg)
		return nil, false, &domain.APIError{Code: env.Code, Message: msg}
	}
	if notice, ok := approvalNotice(env.Data); ok {
		msg := notice.Message
		if msg == "" {
			msg = msgPendingApproval
		}
		c.notify.Warning(msg)
		c.log.Info().Str("message", msg).Msg("api: operación pendiente de aprobación")
		return env.Data, true, nil
	}
	return env.Data, false, nil
}

type approvalKey struct{}

// WithApproval devuelve un contexto que registra en notice si la operación
// quedó pendiente de aprobación. El valor cero de T que devuelve la llamada
// no basta para saberlo.
func WithApproval(ctx context.Context) (context.Context, *dto.ApprovalNotice) {
	notice := &dto.ApprovalNotice{}
	return context.WithValue(ctx, approvalKey{}, notice), notice
}

func recordApproval(ctx context.Context, data json.RawMessage) {
	dst, ok := ctx.Value(approvalKey{}).(*dto.ApprovalNotice)
	if !ok {
		return
	}
	notice, _ := approvalNotice(data)
	if notice.Message == "" {
		notice.Message = msgPendingApproval
	}
	*dst = notice
}

// approvalNotice detecta data = {"requires_approval": true, ...}.
func approvalNotice(data json.RawMessage) (dto.ApprovalNotice, bool) {
	var notice dto.ApprovalNotice
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return notice, false
	}
	if err := json.Unmarshal(trimmed, &notice); err != nil {
		return notice, false
	}
	return notice, notice.RequiresApproval
}

// checkStatus interceptor de errores de transporte.
func (c *Client) checkStatus(status int, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := envelopeMessage(raw)
	if status == http.StatusUnauthorized {
		c.expireSession()
		if msg == "" {
			msg = msgSessionExpired
		}
		return &domain.TransportError{Status: status, Message: msg, Err: domain.ErrUnauthorized}
	}
	if msg == "" {
		msg = fmt.Sprintf("%s (HTTP %d)", msgNetworkError, status)
	}
	c.notify.Error(msg)
	var sentinel error
	switch status {
	case http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = domain.ErrInvalidInput
	}
	return &domain.TransportError{Status: status, Message: msg, Err: sentinel}
}

// expireSession borra token y usuario y redirige a /login.
func (c *Client) expireSession() {
	if err := c.session.Clear(); err != nil {
		c.log.Error().Err(err).Msg("api: no se pudo limpiar la sesión")
	}
	c.log.Warn().Msg("api: 401, sesión cerrada")
	c.notify.Warning(msgSessionExpired)
	c.nav.Redirect(navigation.PathLogin)
}

func (c *Client) networkError(err error) error {
	c.notify.Error(msgNetworkError)
	return &domain.TransportError{Message: err.Error(), Err: err}
}

func envelopeMessage(raw []byte) string {
	var env Envelope
	if len(raw) == 0 || json.Unmarshal(raw, &env) != nil {
		return ""
	}
	return env.Message
}

func invalidResponse(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
}
