package cryptox

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/visitdesk/authcore/internal/common"
)

// LoadOrCreateKey returns the at-rest encryption key stored at path,
// generating and persisting a fresh one on first use. The file holds the
// key as base64 text and is created owner-readable only.
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key, derr := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if derr != nil {
			return nil, fmt.Errorf("%w: corrupt key file %s: %v", common.ErrCrypto, path, derr)
		}
		if len(key) != KeyLength {
			return nil, fmt.Errorf("%w: key file %s holds %d bytes, want %d", common.ErrCrypto, path, len(key), KeyLength)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: read key file %s: %v", common.ErrCrypto, path, err)
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("%w: write key file %s: %v", common.ErrCrypto, path, err)
	}
	return key, nil
}
