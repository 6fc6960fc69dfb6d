package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	require.NoError(t, err)
	defer f.Close()

	require.False(t, IsTerminal(f))
}

func TestIsTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	require.False(t, IsTerminal(r))
}

func TestIsTerminal_Nil(t *testing.T) {
	require.False(t, IsTerminal(nil))
}
