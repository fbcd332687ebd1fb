// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/pack"
)

func writePak(t *testing.T, name string, files map[string][]byte) {
	t.Helper()
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, pack.Write(f, files))
	require.NoError(t, f.Close())
}

func setup(t *testing.T) string {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "doc1.txt"), []byte("loose"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "doc3.txt"), []byte("only loose"), 0o644))
	writePak(t, filepath.Join(base, "pak0.pak"), map[string][]byte{
		"doc1.txt": []byte("pak0"),
		"doc2.txt": []byte("pak0"),
	})
	writePak(t, filepath.Join(base, "pak1.pak"), map[string][]byte{
		"doc2.txt": []byte("pak1"),
	})
	mod := filepath.Join(base, "mod")
	require.NoError(t, os.MkdirAll(filepath.Join(mod, "levels"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mod, "levels", "a.rlvl"), []byte("mod level"), 0o644))
	return base
}

func TestFilesystemOrder(t *testing.T) {
	base := setup(t)
	UseBaseDir(base)
	AddGameDir("mod")
	defer UseBaseDir(t.TempDir())

	for _, tc := range []struct {
		name string
		want string
	}{
		{"doc1.txt", "pak0"},
		{"doc2.txt", "pak1"},
		{"doc3.txt", "only loose"},
		{"/levels/a.rlvl", "mod level"},
	} {
		b, err := ReadFile(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, string(b), tc.name)
	}
	_, err := ReadFile("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.Equal(t, []string{
		filepath.Join(base, "mod"),
		filepath.Join(base, "pak1.pak"),
		filepath.Join(base, "pak0.pak"),
		base,
	}, SearchPath())
	assert.Equal(t, base, BaseDir())
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".rlvl", Ext("levels/e1m1.rlvl"))
	assert.Equal(t, "", Ext("levels.d/e1m1"))
	assert.Equal(t, "levels/e1m1", StripExt("levels/e1m1.rlvl"))
	assert.Equal(t, "levels.d/e1m1", StripExt("levels.d/e1m1"))
}
