package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00467F")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6dae0"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00467F"))
)

func (a *App) setOutput(cmd *cobra.Command) error {
	f, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil
	}
	switch f {
	case formatTable, formatJSON:
		a.output = f
		return nil
	}
	return fmt.Errorf("%w: formato %q (table|json)", domain.ErrInvalidInput, f)
}

// render imprime v como JSON o como tabla según --output.
func (a *App) render(v any, headers []string, rows [][]string) error {
	if a.output == formatJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.Out, string(b))
		return err
	}
	_, err := fmt.Fprintln(a.Out, renderTable(headers, rows))
	return err
}

// renderList añade la línea de total bajo la tabla.
func (a *App) renderList(v any, total int64, headers []string, rows [][]string) error {
	if err := a.render(v, headers, rows); err != nil {
		return err
	}
	if a.output == formatTable {
		fmt.Fprintf(a.Out, "共 %d 条\n", total)
	}
	return nil
}

// renderFields tabla de dos columnas campo/valor para un único registro.
func (a *App) renderFields(v any, fields [][2]string) error {
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{f[0], f[1]}
	}
	return a.render(v, []string{"字段", "值"}, rows)
}

func (a *App) section(title string) {
	if a.output == formatTable {
		fmt.Fprintln(a.Out, titleStyle.Render(title))
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func datePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return date(*t)
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
