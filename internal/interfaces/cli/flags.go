package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
)

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: id %q", domain.ErrInvalidInput, s)
	}
	return uint(n), nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dto.DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: importe %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// enumFlag valida un valor contra los literales del backend.
func enumFlag[T ~string](name, value string, valid func(T) bool) (T, error) {
	v := T(value)
	if !valid(v) {
		return "", fmt.Errorf("%w: --%s %q", domain.ErrInvalidInput, name, value)
	}
	return v, nil
}

// pageFlags registra --limit y --offset.
func pageFlags(cmd *cobra.Command, p *dto.PageRequest) {
	cmd.Flags().IntVar(&p.Limit, "limit", 20, "registros por página")
	cmd.Flags().IntVar(&p.Offset, "offset", 0, "desplazamiento")
}

// changed aplica fn sólo si el flag se pasó explícitamente.
func changed(fs *pflag.FlagSet, name string, fn func() error) error {
	if !fs.Changed(name) {
		return nil
	}
	return fn()
}

func idListFlag(s string) (entity.IDList, error) {
	l, err := entity.ParseIDList(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return l, nil
}

// deleteCommand "delete ID" común a todos los recursos.
func (a *App) deleteCommand(what string, del func(context.Context, uint) error) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Borrar " + what,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rid, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := a.confirm(fmt.Sprintf("确定删除 %s %d 吗？[y/N] ", what, rid))
				if err != nil || !ok {
					return err
				}
			}
			ctx, pending := erpapi.WithApproval(cmd.Context())
			if err := del(ctx, rid); err != nil {
				return err
			}
			if pending.RequiresApproval {
				return nil
			}
			a.Notifier.Success("删除成功")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	return cmd
}

// confirm pregunta y/N por la entrada estándar.
func (a *App) confirm(prompt string) (bool, error) {
	ans, err := a.readLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes", "是":
		return true, nil
	}
	return false, nil
}
