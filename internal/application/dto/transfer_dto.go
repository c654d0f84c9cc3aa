package dto

import (
	"fmt"

	"github.com/jhoicas/erp-admin/internal/domain"
)

// TransferKind recurso que admite plantilla, importación y exportación.
type TransferKind string

const (
	KindPeople    TransferKind = "people"
	KindCustomers TransferKind = "customers"
)

// ParseTransferKind valida el tipo antes de enviar nada al backend.
func ParseTransferKind(s string) (TransferKind, error) {
	switch k := TransferKind(s); k {
	case KindPeople, KindCustomers:
		return k, nil
	}
	return "", fmt.Errorf("%w: tipo %q (people|customers)", domain.ErrInvalidInput, s)
}

// ImportStrategy qué hacer con filas que ya existen.
type ImportStrategy string

const (
	StrategySkip      ImportStrategy = "skip"
	StrategyUpdate    ImportStrategy = "update"
	StrategyCreateNew ImportStrategy = "create_new"
)

// ParseImportStrategy valida la estrategia de importación.
func ParseImportStrategy(s string) (ImportStrategy, error) {
	switch st := ImportStrategy(s); st {
	case StrategySkip, StrategyUpdate, StrategyCreateNew:
		return st, nil
	}
	return "", fmt.Errorf("%w: estrategia %q (skip|update|create_new)", domain.ErrInvalidInput, s)
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Total   int           `json:"total"`
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors"`
}

// ImportError fallo en una celda del fichero importado.
type ImportError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Blob fichero descargado.
type Blob struct {
	Filename    string
	ContentType string
	Data        []byte
}
