// Package entity contiene los registros del backend del ERP tal como viajan
// por la API.
//
// Los importes son decimal.Decimal y el backend los enlaza como float64. Quien
// serialice entidades hacia el backend llama antes a NumericDecimals; lo hacen
// el arranque de erpctl y erpapi.NewClient.
package entity

import (
	"sync"

	"github.com/shopspring/decimal"
)

var numericOnce sync.Once

// NumericDecimals hace que decimal.Decimal se serialice como número JSON en
// todo el proceso. Es idempotente.
func NumericDecimals() {
	numericOnce.Do(func() { decimal.MarshalJSONWithoutQuotes = true })
}
