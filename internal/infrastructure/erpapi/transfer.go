package erpapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain"
)

// TransferService plantillas, importación y exportación masiva.
type TransferService struct{ c *Client }

// Template GET /templates/:kind.
func (s *TransferService) Template(ctx context.Context, kind dto.TransferKind) (*dto.Blob, error) {
	if _, err := dto.ParseTransferKind(string(kind)); err != nil {
		return nil, err
	}
	return s.c.Download(ctx, "/templates/"+string(kind))
}

// Export GET /export/:kind.
func (s *TransferService) Export(ctx context.Context, kind dto.TransferKind) (*dto.Blob, error) {
	if _, err := dto.ParseTransferKind(string(kind)); err != nil {
		return nil, err
	}
	return s.c.Download(ctx, "/export/"+string(kind))
}

// Import POST /import/:kind con los campos file y strategy.
func (s *TransferService) Import(ctx context.Context, kind dto.TransferKind, filename string, file io.Reader, strategy dto.ImportStrategy) (*dto.ImportResult, error) {
	if _, err := dto.ParseTransferKind(string(kind)); err != nil {
		return nil, err
	}
	if _, err := dto.ParseImportStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%w: fichero vacío", domain.ErrInvalidInput)
	}
	return Upload[*dto.ImportResult](ctx, s.c, "/import/"+string(kind), Form{
		Fields:    map[string]string{"strategy": string(strategy)},
		FileField: "file",
		Filename:  filepath.Base(filename),
		File:      file,
	})
}

// ImportFile abre path e importa su contenido.
func (s *TransferService) ImportFile(ctx context.Context, kind dto.TransferKind, path string, strategy dto.ImportStrategy) (*dto.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(ctx, kind, path, f, strategy)
}

// SaveBlob escribe el fichero en dir y devuelve la ruta final. name sustituye
// al nombre sugerido por el servidor si no está vacío.
func SaveBlob(dir, name string, b *dto.Blob) (string, error) {
	if b == nil {
		return "", fmt.Errorf("%w: fichero vacío", domain.ErrInvalidInput)
	}
	if name == "" {
		name = b.Filename
	}
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: nombre de fichero vacío", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear %s: %w", dir, err)
	}
	dst := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(dst, b.Data, 0o644); err != nil {
		return "", fmt.Errorf("guardar %s: %w", dst, err)
	}
	return dst, nil
}
