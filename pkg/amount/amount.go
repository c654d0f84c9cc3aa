// Package amount formatea importes según el locale configurado.
package amount

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter imprime importes con separador de miles y dos decimales.
type Formatter struct {
	p *message.Printer
}

// New crea el formateador para un tag BCP 47 ("zh-CN", "es-CO"...).
// Un tag inválido cae en zh-CN.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.SimplifiedChinese
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Format 1234.5 -> "1,234.50" (zh-CN).
func (f *Formatter) Format(d decimal.Decimal) string {
	return f.p.Sprint(number.Decimal(d.InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Currency antepone el símbolo de yuan.
func (f *Formatter) Currency(d decimal.Decimal) string {
	return "¥" + f.Format(d)
}

// Int separador de miles para contadores.
func (f *Formatter) Int(n int64) string {
	return f.p.Sprint(number.Decimal(n))
}
