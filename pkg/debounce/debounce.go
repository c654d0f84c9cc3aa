// Package debounce retrasa una función hasta que dejan de llegar llamadas.
package debounce

import (
	"sync"
	"time"
)

// Debouncer agrupa llamadas rápidas sucesivas: fn se ejecuta una sola vez,
// wait después de la última llamada y con el argumento de esa última llamada.
type Debouncer[T any] struct {
	mu    sync.Mutex
	wait  time.Duration
	fn    func(T)
	timer *time.Timer
	seq   uint64
}

// New construye el debouncer. wait <= 0 ejecuta fn en la siguiente vuelta del timer.
func New[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Call programa fn(arg) y cancela cualquier ejecución pendiente.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// Un Stop tardío puede no impedir un disparo ya en curso; seq lo descarta.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn(arg)
	})
}

// Cancel descarta la ejecución pendiente, si la hay.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending indica si hay una ejecución programada.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Func adapta el debouncer a una función simple, p. ej. el filtro de búsqueda.
func Func[T any](wait time.Duration, fn func(T)) func(T) {
	return New(wait, fn).Call
}
