// Package notify muestra los avisos de la consola en la terminal.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/erp-admin/internal/application/ports"
)

// Level gravedad de un aviso.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

var (
	colorSuccess = lipgloss.Color("#8BC34A")
	colorInfo    = lipgloss.Color("#2196F3")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
)

// Styles estilos por nivel.
type Styles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles etiqueta en negrita con el color semántico del nivel.
func DefaultStyles() Styles {
	tag := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Styles{
		Success: tag.Foreground(colorSuccess),
		Info:    tag.Foreground(colorInfo),
		Warning: tag.Foreground(colorWarning),
		Error:   tag.Foreground(colorError),
	}
}

// TerminalNotifier implementa ports.Notifier escribiendo una línea por aviso.
type TerminalNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
	onShow func(Level, string)
}

var _ ports.Notifier = (*TerminalNotifier)(nil)

// New escribe en out (os.Stderr si es nil).
func New(out io.Writer) *TerminalNotifier {
	if out == nil {
		out = os.Stderr
	}
	return &TerminalNotifier{out: out, styles: DefaultStyles()}
}

// OnShow registra un observador adicional (la barra de estado del TUI).
func (n *TerminalNotifier) OnShow(fn func(Level, string)) {
	n.mu.Lock()
	n.onShow = fn
	n.mu.Unlock()
}

func (n *TerminalNotifier) Success(msg string) { n.show(LevelSuccess, msg) }
func (n *TerminalNotifier) Info(msg string)    { n.show(LevelInfo, msg) }
func (n *TerminalNotifier) Warning(msg string) { n.show(LevelWarning, msg) }
func (n *TerminalNotifier) Error(msg string)   { n.show(LevelError, msg) }

func (n *TerminalNotifier) show(level Level, msg string) {
	n.mu.Lock()
	hook := n.onShow
	n.mu.Unlock()
	if hook != nil {
		hook(level, msg)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", n.styles.tag(level), msg)
}

func (s Styles) tag(level Level) string {
	switch level {
	case LevelSuccess:
		return s.Success.Render("✔")
	case LevelWarning:
		return s.Warning.Render("!")
	case LevelError:
		return s.Error.Render("✘")
	default:
		return s.Info.Render("i")
	}
}

// Render aplica el estilo del nivel a un texto completo.
func (s Styles) Render(level Level, msg string) string {
	switch level {
	case LevelSuccess:
		return s.Success.Render(msg)
	case LevelWarning:
		return s.Warning.Render(msg)
	case LevelError:
		return s.Error.Render(msg)
	default:
		return s.Info.Render(msg)
	}
}
