package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTrimsAndSkips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.txt")
	content := "www\n  mail  \n\n# comentario\nftp\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	words, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "mail", "ftp"}, words)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-existe.txt"))
	assert.Error(t, err)
}
