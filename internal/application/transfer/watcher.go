// Package transfer vigila una bandeja de entrada e importa las hojas Excel
// que aparecen en ella.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/pkg/debounce"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

// DoneDir subdirectorio al que se mueven los ficheros importados.
const DoneDir = "procesados"

const defaultDebounce = 300 * time.Millisecond

// Importer sube un fichero a POST /import/:kind.
type Importer interface {
	ImportFile(ctx context.Context, kind dto.TransferKind, path string, strategy dto.ImportStrategy) (*dto.ImportResult, error)
}

// Options configuración del vigilante.
type Options struct {
	Dir          string
	Kind         dto.TransferKind
	Strategy     dto.ImportStrategy
	Debounce     time.Duration // espera tras la última escritura; 0 = 300ms
	ScanExisting bool          // importar también los .xlsx presentes al arrancar
	OnResult     func(Result)
}

// Result desenlace de la importación de un fichero.
type Result struct {
	Path   string // ruta final (dentro de procesados/ si se importó)
	Import *dto.ImportResult
	Err    error
}

// Watcher importa cada .xlsx cuando sus escrituras se asientan.
type Watcher struct {
	opts     Options
	importer Importer
	notifier ports.Notifier
	log      *logger.Logger

	mu      sync.Mutex
	pending map[string]*debounce.Debouncer[string]
	closed  bool
	wg      sync.WaitGroup
}

// NewWatcher valida las opciones.
func NewWatcher(importer Importer, opts Options, notifier ports.Notifier, log *logger.Logger) (*Watcher, error) {
	if _, err := dto.ParseTransferKind(string(opts.Kind)); err != nil {
		return nil, err
	}
	if opts.Strategy == "" {
		opts.Strategy = dto.StrategySkip
	}
	if _, err := dto.ParseImportStrategy(string(opts.Strategy)); err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("bandeja %s: %w", opts.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bandeja %s: no es un directorio", opts.Dir)
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		opts:     opts,
		importer: importer,
		notifier: notifier,
		log:      log.Named("transfer.watch"),
		pending:  make(map[string]*debounce.Debouncer[string]),
	}, nil
}

// Run bloquea hasta que ctx termina. Al salir descarta las importaciones
// programadas y espera a las que estén en curso.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer w.shutdown(fw)

	if err := fw.Add(w.opts.Dir); err != nil {
		return fmt.Errorf("vigilar %s: %w", w.opts.Dir, err)
	}
	w.log.Info().Str("dir", w.opts.Dir).Str("kind", string(w.opts.Kind)).Msg("vigilando bandeja")

	if w.opts.ScanExisting {
		if err := w.scan(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !importable(ev.Name) {
				continue
			}
			w.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("evento")
			w.schedule(ctx, ev.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("fsnotify")
		}
	}
}

func (w *Watcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.opts.Dir)
	if err != nil {
		return fmt.Errorf("leer %s: %w", w.opts.Dir, err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() && importable(e.Name()) {
			w.schedule(ctx, filepath.Join(w.opts.Dir, e.Name()))
		}
	}
	return nil
}

// schedule reinicia la espera del fichero; cada ruta tiene su propio debouncer.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	d, ok := w.pending[path]
	if !ok {
		d = debounce.New(w.opts.Debounce, func(p string) { w.fire(ctx, p) })
		w.pending[path] = d
	}
	d.Call(path)
}

func (w *Watcher) fire(ctx context.Context, path string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	res := w.importOne(ctx, path)
	if w.opts.OnResult != nil {
		w.opts.OnResult(res)
	}
}

func (w *Watcher) importOne(ctx context.Context, path string) Result {
	name := filepath.Base(path)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Path: path, Err: err}
	}

	out, err := w.importer.ImportFile(ctx, w.opts.Kind, path, w.opts.Strategy)
	if err != nil {
		w.log.Error().Err(err).Str("file", name).Msg("importación fallida")
		return Result{Path: path, Err: err}
	}

	dst, err := moveDone(path)
	if err != nil {
		w.log.Error().Err(err).Str("file", name).Msg("mover a procesados")
		w.notifier.Error(fmt.Sprintf("%s: 移动文件失败", name))
		return Result{Path: path, Import: out, Err: err}
	}

	if out != nil {
		w.log.Info().Str("file", name).Int("success", out.Success).Int("failed", out.Failed).Msg("importado")
		w.notifier.Success(fmt.Sprintf("%s: 导入成功 %d 条，失败 %d 条", name, out.Success, out.Failed))
	}
	return Result{Path: dst, Import: out}
}

func (w *Watcher) shutdown(fw *fsnotify.Watcher) {
	w.mu.Lock()
	w.closed = true
	for path, d := range w.pending {
		d.Cancel()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if err := fw.Close(); err != nil {
		w.log.Warn().Err(err).Msg("cerrar fsnotify")
	}
	w.wg.Wait()
}

// moveDone mueve path a <dir>/procesados/. Si el nombre existe añade un sufijo con la hora.
func moveDone(path string) (string, error) {
	dir := filepath.Join(filepath.Dir(path), DoneDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Stat(dst); err == nil {
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(filepath.Base(path), ext)
		dst = filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102150405.000"), ext))
	}
	if err := os.Rename(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// importable descarta ficheros ocultos y los bloqueos temporales de Excel (~$).
func importable(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}
