package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Put(ctx, "services/photo.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	r, err := store.Open(ctx, "services/photo.jpg")
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	require.NoError(t, store.Remove(ctx, "services/photo.jpg"))
	_, err = store.Open(ctx, "services/photo.jpg")
	assert.Error(t, err)

	// Removing a missing file is a no-op.
	assert.NoError(t, store.Remove(ctx, "services/photo.jpg"))
}
