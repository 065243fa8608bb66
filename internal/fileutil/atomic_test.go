package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFileAtomic(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	filename := filepath.Join(dir, "nested", "bankroll.yaml")

	a.NoError(WriteFileAtomic(filename, []byte("balance: 10\n"), 0o600))
	b, err := os.ReadFile(filename)
	a.NoError(err)
	a.Equal("balance: 10\n", string(b))

	a.NoError(WriteFileAtomic(filename, []byte("balance: 20\n"), 0o600))
	b, err = os.ReadFile(filename)
	a.NoError(err)
	a.Equal("balance: 20\n", string(b))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(filename))
	a.NoError(err)
	a.Equal(1, len(entries))
}
