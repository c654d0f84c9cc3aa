// Package sessionstore persiste la sesión local (token y usuario) en un JSON.
package sessionstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// FileStore almacén clave-valor en un único fichero 0600. Cada escritura
// reescribe el fichero completo vía fichero temporal + rename.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

var _ ports.SessionStore = (*FileStore)(nil)

// Open carga path o empieza vacío si no existe.
func Open(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("sessionstore: ruta vacía")
	}
	s := &FileStore{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("sessionstore: leer %s: %w", path, err)
	case len(raw) == 0:
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("sessionstore: %s corrupto: %w", path, err)
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	return s, nil
}

// Path ruta del fichero.
func (s *FileStore) Path() string { return s.path }

// Get valor de key ("" si no existe).
func (s *FileStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

// Set reemplaza key; value vacío la elimina.
func (s *FileStore) Set(key, value string) error {
	return s.withWrite(func(m map[string]string) {
		if value == "" {
			delete(m, key)
			return
		}
		m[key] = value
	})
}

func (s *FileStore) Token() string { return s.Get(ports.KeyToken) }

func (s *FileStore) SetToken(token string) error { return s.Set(ports.KeyToken, token) }

// User usuario cacheado o nil si no hay.
func (s *FileStore) User() (*entity.UserInfo, error) {
	raw := s.Get(ports.KeyUser)
	if raw == "" {
		return nil, nil
	}
	var u entity.UserInfo
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("sessionstore: %s ilegible: %w", ports.KeyUser, err)
	}
	return &u, nil
}

func (s *FileStore) SetUser(u *entity.UserInfo) error {
	if u == nil {
		return s.Set(ports.KeyUser, "")
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("sessionstore: serializar usuario: %w", err)
	}
	return s.Set(ports.KeyUser, string(b))
}

// Clear borra token y usuario.
func (s *FileStore) Clear() error {
	return s.withWrite(func(m map[string]string) {
		delete(m, ports.KeyToken)
		delete(m, ports.KeyUser)
	})
}

func (s *FileStore) withWrite(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	fn(next)
	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) flush(m map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sessionstore: crear %s: %w", dir, err)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("sessionstore: temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("sessionstore: guardar %s: %w", s.path, err)
	}
	return nil
}
