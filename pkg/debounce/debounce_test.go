package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_TresLlamadasUnaEjecucion(t *testing.T) {
	var (
		mu      sync.Mutex
		calls   int
		got     string
		firedAt time.Time
	)
	d := New(300*time.Millisecond, func(s string) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		got = s
		firedAt = time.Now()
	})

	d.Call("a")
	time.Sleep(100 * time.Millisecond)
	d.Call("b")
	time.Sleep(100 * time.Millisecond)
	d.Call("c")
	lastCall := time.Now()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Margen para asegurar que no llega una segunda ejecución.
	time.Sleep(400 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "debe ejecutarse exactamente una vez")
	assert.Equal(t, "c", got, "con el argumento de la última llamada")
	assert.GreaterOrEqual(t, firedAt.Sub(lastCall), 300*time.Millisecond)
}

func TestDebouncer_LlamadasEspaciadasEjecutanCadaUna(t *testing.T) {
	var calls int32
	d := New(20*time.Millisecond, func(int) { atomic.AddInt32(&calls, 1) })

	d.Call(1)
	time.Sleep(80 * time.Millisecond)
	d.Call(2)
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDebouncer_Cancel(t *testing.T) {
	var calls int32
	d := New(50*time.Millisecond, func(int) { atomic.AddInt32(&calls, 1) })

	d.Call(1)
	assert.True(t, d.Pending())
	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFunc_AdaptadorSimple(t *testing.T) {
	done := make(chan string, 1)
	search := Func(10*time.Millisecond, func(q string) { done <- q })

	search("li")
	search("lihua")

	select {
	case q := <-done:
		assert.Equal(t, "lihua", q)
	case <-time.After(time.Second):
		t.Fatal("la función no se ejecutó")
	}
}
