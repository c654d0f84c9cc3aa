package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	"github.com/jhoicas/erp-admin/internal/interfaces/cli"
	"github.com/jhoicas/erp-admin/pkg/config"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	entity.NumericDecimals()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 1
	}

	log, err := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		File:  cfg.App.LogFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Close()
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.Endpoint()).
		Msg("iniciando consola")

	app, err := cli.NewApp(cfg, log, cli.Options{})
	if err != nil {
		log.Error().Err(err).Msg("inicializar consola")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "erpctl:", err)
		return exitCode(err)
	}
	return 0
}

// exitCode 2 para errores de sesión o permisos, 1 para el resto.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden):
		return 2
	}
	return 1
}
