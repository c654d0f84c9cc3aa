package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		locale string
		in     string
		want   string
	}{
		{"zh-CN", "1234.5", "1,234.50"},
		{"zh-CN", "0", "0.00"},
		{"en", "1000000", "1,000,000.00"},
		{"de", "1000000", "1.000.000,00"},
		{"no-es-un-tag!!", "12", "12.00"},
	}
	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.in, func(t *testing.T) {
			got := New(tt.locale).Format(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_CurrencyEInt(t *testing.T) {
	f := New("zh-CN")
	assert.Equal(t, "¥800.00", f.Currency(decimal.NewFromInt(800)))
	assert.Equal(t, "12,345", f.Int(12345))
}
