package assetstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "mem://")
	require.NoError(t, err)
	defer store.Close()

	payload := []byte(`{"hist":[1,2,3],"bins":3}`)

	stored, err := store.Put(ctx, "results/abc.json", payload)
	require.NoError(t, err)
	assert.Equal(t, "results/abc.json", stored.Key)
	assert.Equal(t, int64(len(payload)), stored.SizeBytes)
	assert.Contains(t, stored.MimeType, "json")
	assert.Len(t, stored.Checksum, 64)

	exists, err := store.Exists(ctx, "results/abc.json")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Fetch(ctx, "results/abc.json")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	require.NoError(t, store.Delete(ctx, "results/abc.json"))

	exists, err = store.Exists(ctx, "results/abc.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlobStorePutDetectsImageType(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "mem://")
	require.NoError(t, err)
	defer store.Close()

	// Minimal PNG header is enough for detection
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	stored, err := store.Put(ctx, "files/scan.png", png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", stored.MimeType)
}

func TestBlobStoreFetchMissingKey(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "mem://")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Fetch(ctx, "files/absent")
	assert.Error(t, err)
}
