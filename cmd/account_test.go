package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPasswordFromPipe(t *testing.T) {
	prompt := new(bytes.Buffer)

	password, err := readPassword(strings.NewReader("  secret1\n"), prompt, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret1", password)
	assert.Equal(t, "Password: ", prompt.String())
}

func TestReadPasswordFromRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(path, []byte("secret1\n"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	password, err := readPassword(f, new(bytes.Buffer), "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret1", password)
}

func TestReadPasswordEmptyInput(t *testing.T) {
	_, err := readPassword(strings.NewReader(""), new(bytes.Buffer), "Password: ")
	require.Error(t, err)
}
