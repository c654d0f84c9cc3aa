// Package clipboard copia texto al portapapeles del sistema o, si no hay,
// a la terminal mediante la secuencia OSC 52.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"

	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

const (
	msgCopied = "已复制到剪贴板"
	msgFailed = "复制失败"
)

// Variables de paquete para sustituirlas en tests.
var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	clipboardWriteAll    = clipboard.WriteAll
	isTerminal           = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

// Copier implementa la copia inteligente.
type Copier struct {
	out      io.Writer
	notifier ports.Notifier
	log      *logger.Logger
	getenv   func(string) string
}

// New out es la terminal donde se escribe la secuencia OSC 52 (os.Stderr si es nil).
func New(out io.Writer, notifier ports.Notifier, log *logger.Logger) *Copier {
	if out == nil {
		out = os.Stderr
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Copier{out: out, notifier: notifier, log: log, getenv: os.Getenv}
}

// SmartCopy usa el portapapeles del sistema si existe; si no, OSC 52.
// Notifica el resultado y devuelve true si se copió. Nunca entra en pánico.
func (c *Copier) SmartCopy(text string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("copiar al portapapeles")
			c.notifier.Error(msgFailed)
			ok = false
		}
	}()

	if !clipboardUnsupported() {
		return c.copySystem(text)
	}
	return c.copyOSC52(text)
}

func (c *Copier) copySystem(text string) bool {
	if err := clipboardWriteAll(text); err != nil {
		c.log.Warn().Err(err).Msg("portapapeles del sistema")
		c.notifier.Error(msgFailed)
		return false
	}
	c.notifier.Success(msgCopied)
	return true
}

func (c *Copier) copyOSC52(text string) bool {
	if !isTerminal(c.out) {
		c.notifier.Error(msgFailed)
		return false
	}
	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		c.log.Warn().Err(fmt.Errorf("osc52: %w", err)).Msg("copiar vía terminal")
		c.notifier.Error(msgFailed)
		return false
	}
	c.notifier.Success(msgCopied)
	return true
}
