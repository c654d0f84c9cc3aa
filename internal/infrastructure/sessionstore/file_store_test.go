package sessionstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

func TestFileStore_PersisteTokenYUsuario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.Token())

	require.NoError(t, s.SetToken("abc"))
	require.NoError(t, s.SetUser(&entity.UserInfo{ID: 7, Username: "admin", Role: entity.RoleSuperAdmin}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", reopened.Token())
	u, err := reopened.User()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, uint(7), u.ID)
	assert.Equal(t, entity.RoleSuperAdmin, u.Role)
}

func TestFileStore_ClavesCompatibles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("tok"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"erp_token": "tok"`)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("abc"))
	require.NoError(t, s.SetUser(&entity.UserInfo{ID: 1}))
	require.NoError(t, s.Set("theme", "dark"))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	u, err := s.User()
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, "dark", s.Get("theme"), "Clear sólo toca token y usuario")
}

func TestFileStore_EscriturasIdempotentes(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.SetToken("same"))
		}()
	}
	wg.Wait()
	assert.Equal(t, "same", s.Token())
}

func TestFileStore_FicheroCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}
