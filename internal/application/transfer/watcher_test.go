package transfer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeImporter struct {
	mu    sync.Mutex
	paths []string
	fail  error
}

func (f *fakeImporter) ImportFile(_ context.Context, kind dto.TransferKind, path string, strategy dto.ImportStrategy) (*dto.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, filepath.Base(path))
	if f.fail != nil {
		return nil, f.fail
	}
	return &dto.ImportResult{Total: 1, Success: 1}, nil
}

func (f *fakeImporter) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

type runner struct {
	results chan Result
	cancel  context.CancelFunc
	done    chan error
}

func start(t *testing.T, imp Importer, opts Options) *runner {
	t.Helper()
	r := &runner{results: make(chan Result, 16), done: make(chan error, 1)}
	opts.OnResult = func(res Result) { r.results <- res }
	w, err := NewWatcher(imp, opts, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go func() { r.done <- w.Run(ctx) }()
	t.Cleanup(r.stop)
	// fsnotify necesita un instante para registrar el directorio.
	time.Sleep(50 * time.Millisecond)
	return r
}

func (r *runner) stop() {
	r.cancel()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
	}
}

func (r *runner) next(t *testing.T) Result {
	t.Helper()
	select {
	case res := <-r.results:
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("sin resultado de importación")
		return Result{}
	}
}

func TestWatcher_ImportaUnaVezTrasAsentarseLasEscrituras(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{}
	r := start(t, imp, Options{Dir: dir, Kind: dto.KindPeople, Debounce: 100 * time.Millisecond})

	path := filepath.Join(dir, "人员.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = f.WriteString("fila\n")
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	res := r.next(t)
	require.NoError(t, res.Err)
	assert.Equal(t, filepath.Join(dir, DoneDir, "人员.xlsx"), res.Path)
	assert.FileExists(t, res.Path)
	assert.NoFileExists(t, path)
	assert.Equal(t, []string{"人员.xlsx"}, imp.calls())
}

func TestWatcher_IgnoraFicherosNoExcel(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{}
	start(t, imp, Options{Dir: dir, Kind: dto.KindCustomers, Debounce: 30 * time.Millisecond})

	for _, name := range []string{"notas.txt", "~$clientes.xlsx", ".oculto.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, imp.calls())
}

func TestWatcher_ErrorDejaElFicheroEnLaBandeja(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{fail: &domain.APIError{Code: 1, Message: "格式错误"}}
	r := start(t, imp, Options{Dir: dir, Kind: dto.KindCustomers, Debounce: 30 * time.Millisecond})

	path := filepath.Join(dir, "clientes.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	res := r.next(t)
	var apiErr *domain.APIError
	assert.True(t, errors.As(res.Err, &apiErr))
	assert.FileExists(t, path)
}

func TestWatcher_ScanExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "previo.xlsx"), []byte("x"), 0o644))
	imp := &fakeImporter{}

	r := start(t, imp, Options{Dir: dir, Kind: dto.KindPeople, Debounce: 30 * time.Millisecond, ScanExisting: true})

	res := r.next(t)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"previo.xlsx"}, imp.calls())
}

func TestNewWatcher_ValidaOpciones(t *testing.T) {
	dir := t.TempDir()

	_, err := NewWatcher(&fakeImporter{}, Options{Dir: dir, Kind: "products"}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewWatcher(&fakeImporter{}, Options{Dir: dir, Kind: dto.KindPeople, Strategy: "merge"}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewWatcher(&fakeImporter{}, Options{Dir: filepath.Join(dir, "no"), Kind: dto.KindPeople}, nil, nil)
	assert.Error(t, err)
}

func TestMoveDone_NombreRepetido(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DoneDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DoneDir, "a.xlsx"), []byte("viejo"), 0o644))
	src := filepath.Join(dir, "a.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("nuevo"), 0o644))

	dst, err := moveDone(src)
	require.NoError(t, err)

	assert.NotEqual(t, filepath.Join(dir, DoneDir, "a.xlsx"), dst)
	assert.FileExists(t, dst)
}
