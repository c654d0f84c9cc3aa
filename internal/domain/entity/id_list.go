package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// IDList lista de IDs que el backend guarda como texto separado por comas ("1,5,8").
type IDList []uint

// ParseIDList interpreta "1, 5,8". Los elementos vacíos se ignoran.
func ParseIDList(s string) (IDList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return IDList{}, nil
	}
	parts := strings.Split(s, ",")
	out := make(IDList, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id inválido %q: %w", p, err)
		}
		out = append(out, uint(n))
	}
	return out, nil
}

// String devuelve el formato del backend.
func (l IDList) String() string {
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// Contains indica si id pertenece a la lista.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func (l IDList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *IDList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("lista de ids: %w", err)
	}
	parsed, err := ParseIDList(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
