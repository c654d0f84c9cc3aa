package dto

import (
	"net/url"
	"strconv"
)

// ListResult respuesta paginada del backend: {total, items}.
type ListResult[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int
	Offset int
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

func (p PageRequest) encode(v url.Values) {
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
}

// MessageResponse cuerpo {message} que devuelven borrados y acciones.
type MessageResponse struct {
	Message string `json:"message"`
}

// ApprovalNotice datos de una operación que quedó pendiente de aprobación.
type ApprovalNotice struct {
	RequiresApproval bool   `json:"requires_approval"`
	Message          string `json:"message"`
}

func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setUint(v url.Values, key string, val uint) {
	if val != 0 {
		v.Set(key, strconv.FormatUint(uint64(val), 10))
	}
}
