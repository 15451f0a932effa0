package selection

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/pie-314/trx/plaindb"
	"github.com/pie-314/trx/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	vim    = provider.Package{Provider: "pacman", Repository: "extra", Name: "vim", Version: "9.1.0707-1"}
	fzf    = provider.Package{Provider: "pacman", Repository: "extra", Name: "fzf", Version: "0.55.0-1"}
	yayBin = provider.Package{Provider: "aur", Repository: "aur", Name: "yay-bin", Version: "12.4.2-1"}
)

func TestToggle(t *testing.T) {
	store, err := New(plaindb.NewMockDB(plaindb.MockConfig{}))
	require.NoError(t, err)

	selected, err := store.Toggle(vim)
	require.NoError(t, err)
	assert.True(t, selected)
	assert.True(t, store.Selected(vim))
	assert.False(t, store.Selected(fzf))

	otherProvider := vim
	otherProvider.Provider = "aur"
	assert.False(t, store.Selected(otherProvider), "selection is keyed per provider")

	selected, err = store.Toggle(vim)
	require.NoError(t, err)
	assert.False(t, selected)
	assert.False(t, store.Selected(vim))
}

func TestList(t *testing.T) {
	store, err := New(plaindb.NewMockDB(plaindb.MockConfig{}))
	require.NoError(t, err)

	packages, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, packages)

	for _, pkg := range []provider.Package{vim, yayBin, fzf} {
		_, err := store.Toggle(pkg)
		require.NoError(t, err)
	}
	packages, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []provider.Package{yayBin, fzf, vim}, packages)
	assert.Equal(t, 3, store.Len())

	require.NoError(t, store.Clear())
	assert.Equal(t, 0, store.Len())
}

func TestPersisted(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	db, err := plaindb.Open(tmpDir)
	require.NoError(t, err)
	store, err := New(db)
	require.NoError(t, err)
	_, err = store.Toggle(yayBin)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = plaindb.Open(tmpDir)
	require.NoError(t, err)
	store, err = New(db)
	require.NoError(t, err)
	packages, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []provider.Package{yayBin}, packages)
}

func TestUnsupportedVersion(t *testing.T) {
	db := plaindb.NewMockDB(plaindb.MockConfig{
		FileReader: func(string) ([]byte, error) {
			return []byte(`{"Version": "7", "Data": {"pacman:extra/vim": {"Name": "vim"}}}`), nil
		},
	})
	_, err := New(db)
	assert.EqualError(t, err, `Unsupported selection version: "7"`)
}
