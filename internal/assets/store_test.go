package assets

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Store("shoe.PNG", bytes.NewReader([]byte("image-bytes")))
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotContains(t, name, "shoe")

	data, err := store.Fetch(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestStore_UniqueNamesPerUpload(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Store("shoe.png", bytes.NewReader([]byte("one")))
	require.NoError(t, err)
	second, err := store.Store("shoe.png", bytes.NewReader([]byte("two")))
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	one, err := store.Fetch(first)
	require.NoError(t, err)
	two, err := store.Fetch(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), one)
	assert.Equal(t, []byte("two"), two)
}

func TestStore_DropsHostileFilename(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Store("../../etc/passwd", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.NotContains(t, name, "..")
	assert.NotContains(t, name, "/")
}

func TestFetch_NotFound(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Fetch("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetch_RejectsTraversal(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../store.go", "a/b.png"} {
		_, err := store.Fetch(name)
		assert.ErrorIs(t, err, ErrNotFound, "name %q", name)
	}
}

func TestNewDiskStore_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewDiskStore(dir)
	require.NoError(t, err)
	_, err = NewDiskStore(dir)
	require.NoError(t, err)
}
