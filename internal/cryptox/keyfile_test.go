package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitdesk/authcore/internal/common"
)

func TestLoadOrCreateKey_CreatesThenReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authcore.key")

	key, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Len(t, key, KeyLength)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, key, again, "existing key file must be reused, not replaced")
}

func TestLoadOrCreateKey_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authcore.key")
	require.NoError(t, os.WriteFile(path, []byte("not base64 at all!!"), 0o600))

	_, err := LoadOrCreateKey(path)
	require.ErrorIs(t, err, common.ErrCrypto)
}

func TestLoadOrCreateKey_WrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authcore.key")
	require.NoError(t, os.WriteFile(path, []byte("c2hvcnQ=\n"), 0o600))

	_, err := LoadOrCreateKey(path)
	require.ErrorIs(t, err, common.ErrCrypto)
}
