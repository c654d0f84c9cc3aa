package ports

// Notifier muestra avisos breves al operador (barra de estado, stderr...).
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Navigator cambia la vista actual. Redirect("/login") tras un 401.
type Navigator interface {
	Redirect(path string)
}

// NopNotifier descarta los avisos.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}

// NopNavigator ignora las redirecciones.
type NopNavigator struct{}

func (NopNavigator) Redirect(string) {}

// Clipboard copia texto para el operador; false si no se pudo copiar.
type Clipboard interface {
	SmartCopy(text string) bool
}
