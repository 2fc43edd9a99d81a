package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docstats/internal/docs/errors"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.md":                   "# Home\n",
		"frontend/vue/my-vue.md":     "# Vue\n",
		"frontend/vue/notes.txt":     "not markdown",
		"backend/nestjs/my-nest.MD":  "# Nest\n",
		"database/korean-sort.mdown": "# Sort\n",
		".vitepress/config.md":       "hidden dir",
		"frontend/.draft.md":         "hidden file",
		"public/stats.json":          "{}",
	})

	files, err := Discover(root)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelativePath)
	}
	assert.Equal(t, []string{
		"backend/nestjs/my-nest.MD",
		"database/korean-sort.mdown",
		"frontend/vue/my-vue.md",
		"index.md",
	}, rels)

	assert.Equal(t, "my-vue", files[2].Name)
	assert.Equal(t, ".md", files[2].Extension)
	assert.Equal(t, filepath.Join(root, "frontend", "vue", "my-vue.md"), files[2].Path)
}

func TestDiscoverEmptyRootReturnsEmptySlice(t *testing.T) {
	files, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, derrors.ErrContentRootNotFound)
}

func TestDiscoverRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"file.md": "x"})

	_, err := Discover(filepath.Join(root, "file.md"))
	require.ErrorIs(t, err, derrors.ErrContentRootNotFound)
}

func TestSitePath(t *testing.T) {
	tests := map[string]string{
		"frontend/vue/my-vue.md":     "/frontend/vue/my-vue",
		"index.md":                   "/index",
		"database/korean-sort.mdown": "/database/korean-sort",
		"a/b.md.md":                  "/a/b.md",
	}
	for rel, want := range tests {
		assert.Equal(t, want, DocFile{RelativePath: rel}.SitePath(), rel)
	}
}
