package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/store/schema"
)

// RunStoreTests runs the store test body against an implementation.
// initDB must return a fresh, isolated store per test.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("CreateAndGetHistogram", func(t *testing.T) { testCreateAndGetHistogram(t, initDB(t)) })
	t.Run("FindHistograms", func(t *testing.T) { testFindHistograms(t, initDB(t)) })
	t.Run("ResolveUpload", func(t *testing.T) { testResolveUpload(t, initDB(t)) })
	t.Run("RemoveHistogram", func(t *testing.T) { testRemoveHistogram(t, initDB(t)) })
	t.Run("SetHistogramAccess", func(t *testing.T) { testSetHistogramAccess(t, initDB(t)) })
	t.Run("NewestImageFile", func(t *testing.T) { testNewestImageFile(t, initDB(t)) })
	t.Run("DefaultBins", func(t *testing.T) { testDefaultBins(t, initDB(t)) })
}

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestACL(public bool, userIDs ...string) []byte {
	acl := domain.ACL{Public: public}
	for _, id := range userIDs {
		acl.Users = append(acl.Users, domain.ACLEntry{UserID: id, Level: domain.AccessAdmin})
	}
	raw, _ := json.Marshal(acl)
	return raw
}

func seedItem(t *testing.T, s Store, creatorID string, access []byte) *schema.Item {
	t.Helper()
	item := &schema.Item{
		Name:      "slide",
		CreatorID: creatorID,
		Access:    access,
	}
	require.NoError(t, s.CreateItem(context.Background(), item))
	return item
}

func seedFile(t *testing.T, s Store, itemID, name, mimeType string) *schema.File {
	t.Helper()
	file, err := s.CreateFile(context.Background(), CreateFileInput{
		ItemID:     itemID,
		Name:       name,
		MimeType:   mimeType,
		SizeBytes:  128,
		StorageKey: "files/" + name,
		Checksum:   "deadbeef",
		CreatorID:  "user-1",
	})
	require.NoError(t, err)
	return file
}

func seedHistogram(t *testing.T, s Store, itemID, token, jobID string, access []byte) *schema.Histogram {
	t.Helper()
	histogram, err := s.CreateHistogram(context.Background(), CreateHistogramInput{
		ItemID:           itemID,
		Label:            false,
		Bitmask:          false,
		Bins:             256,
		CorrelationToken: token,
		JobID:            jobID,
		Access:           access,
	})
	require.NoError(t, err)
	return histogram
}

// =============================================================================
// Tests
// =============================================================================

func testCreateAndGetHistogram(t *testing.T, s Store) {
	ctx := context.Background()

	item := seedItem(t, s, "user-1", buildTestACL(false, "user-1"))
	created := seedHistogram(t, s, item.ID, "token-1", "job-1", item.Access)

	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Expected)
	assert.Nil(t, created.FileID)

	got, err := s.GetHistogram(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, item.ID, got.ItemID)
	assert.Equal(t, 256, got.Bins)
	require.NotNil(t, got.CorrelationToken)
	assert.Equal(t, "token-1", *got.CorrelationToken)

	missing, err := s.GetHistogram(ctx, "01JNOPEXIST0000000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	notified, err := s.CreateHistogram(ctx, CreateHistogramInput{
		ItemID:           item.ID,
		Bins:             256,
		Notify:           true,
		CorrelationToken: "token-n",
		JobID:            "job-n",
		Access:           item.Access,
	})
	require.NoError(t, err)

	got, err = s.GetHistogram(ctx, notified.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Notify)
}

func testFindHistograms(t *testing.T, s Store) {
	ctx := context.Background()

	publicItem := seedItem(t, s, "user-1", buildTestACL(true))
	privateItem := seedItem(t, s, "user-2", buildTestACL(false, "user-2"))

	seedHistogram(t, s, publicItem.ID, "token-a", "job-a", publicItem.Access)
	private := seedHistogram(t, s, privateItem.ID, "token-b", "job-b", privateItem.Access)

	t.Run("anonymous sees public records only", func(t *testing.T) {
		histograms, total, err := s.FindHistograms(ctx, HistogramFilter{})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, histograms, 1)
		assert.Equal(t, publicItem.ID, histograms[0].ItemID)
	})

	t.Run("granted user sees own private records", func(t *testing.T) {
		histograms, total, err := s.FindHistograms(ctx, HistogramFilter{
			User: &domain.User{ID: "user-2"},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, histograms, 2)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		_, total, err := s.FindHistograms(ctx, HistogramFilter{
			User: &domain.User{ID: "root", Admin: true},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
	})

	t.Run("filter by item", func(t *testing.T) {
		histograms, total, err := s.FindHistograms(ctx, HistogramFilter{
			ItemID: &privateItem.ID,
			User:   &domain.User{ID: "root", Admin: true},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, histograms, 1)
		assert.Equal(t, private.ID, histograms[0].ID)
	})

	t.Run("filter by job", func(t *testing.T) {
		jobID := "job-a"
		_, total, err := s.FindHistograms(ctx, HistogramFilter{
			JobID: &jobID,
			User:  &domain.User{ID: "root", Admin: true},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
	})

	t.Run("pagination", func(t *testing.T) {
		histograms, total, err := s.FindHistograms(ctx, HistogramFilter{
			User:   &domain.User{ID: "root", Admin: true},
			Limit:  1,
			Offset: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, histograms, 1)
	})
}

func testResolveUpload(t *testing.T, s Store) {
	ctx := context.Background()

	item := seedItem(t, s, "user-1", buildTestACL(true))
	result := seedFile(t, s, item.ID, "histogram.json", "application/json")

	t.Run("no matching record", func(t *testing.T) {
		resolved, matches, err := s.ResolveUpload(ctx, "token-none", result.ID)
		require.NoError(t, err)
		assert.Nil(t, resolved)
		assert.Zero(t, matches)
	})

	t.Run("single match resolves", func(t *testing.T) {
		histogram := seedHistogram(t, s, item.ID, "token-one", "job-one", item.Access)

		resolved, matches, err := s.ResolveUpload(ctx, "token-one", result.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, matches)
		require.NotNil(t, resolved)
		assert.Equal(t, histogram.ID, resolved.ID)
		assert.False(t, resolved.Expected)
		require.NotNil(t, resolved.FileID)
		assert.Equal(t, result.ID, *resolved.FileID)

		// A second delivery of the same token finds no expected record
		resolved, matches, err = s.ResolveUpload(ctx, "token-one", result.ID)
		require.NoError(t, err)
		assert.Nil(t, resolved)
		assert.Zero(t, matches)
	})

	t.Run("ambiguous match leaves records untouched", func(t *testing.T) {
		first := seedHistogram(t, s, item.ID, "token-dup", "job-d1", item.Access)
		second := seedHistogram(t, s, item.ID, "token-dup", "job-d2", item.Access)

		resolved, matches, err := s.ResolveUpload(ctx, "token-dup", result.ID)
		require.NoError(t, err)
		assert.Nil(t, resolved)
		assert.Equal(t, 2, matches)

		for _, id := range []string{first.ID, second.ID} {
			got, err := s.GetHistogram(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.Expected)
			assert.Nil(t, got.FileID)
		}
	})
}

func testRemoveHistogram(t *testing.T, s Store) {
	ctx := context.Background()

	item := seedItem(t, s, "user-1", buildTestACL(true))

	t.Run("removes record and result file", func(t *testing.T) {
		result := seedFile(t, s, item.ID, "result-a.json", "application/json")
		histogram := seedHistogram(t, s, item.ID, "token-ra", "job-ra", item.Access)
		histogram.FileID = &result.ID
		histogram.Expected = false
		require.NoError(t, s.SaveHistogram(ctx, histogram))

		removed, err := s.RemoveHistogram(ctx, histogram.ID, false)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, result.ID, removed.FileID)
		assert.Equal(t, result.StorageKey, removed.StorageKey)

		got, err := s.GetHistogram(ctx, histogram.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		file, err := s.GetFile(ctx, result.ID)
		require.NoError(t, err)
		assert.Nil(t, file)
	})

	t.Run("keepFile leaves the file row", func(t *testing.T) {
		result := seedFile(t, s, item.ID, "result-b.json", "application/json")
		histogram := seedHistogram(t, s, item.ID, "token-rb", "job-rb", item.Access)
		histogram.FileID = &result.ID
		require.NoError(t, s.SaveHistogram(ctx, histogram))

		removed, err := s.RemoveHistogram(ctx, histogram.ID, true)
		require.NoError(t, err)
		assert.Nil(t, removed)

		file, err := s.GetFile(ctx, result.ID)
		require.NoError(t, err)
		assert.NotNil(t, file)
	})

	t.Run("missing record is a no-op", func(t *testing.T) {
		removed, err := s.RemoveHistogram(ctx, "01JNOPEXIST0000000000000000", false)
		require.NoError(t, err)
		assert.Nil(t, removed)
	})
}

func testSetHistogramAccess(t *testing.T, s Store) {
	ctx := context.Background()

	item := seedItem(t, s, "user-1", buildTestACL(false, "user-1"))
	histogram := seedHistogram(t, s, item.ID, "token-acl", "job-acl", item.Access)

	require.NoError(t, s.SetHistogramAccess(ctx, histogram.ID, buildTestACL(true)))

	got, err := s.GetHistogram(ctx, histogram.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	acl, err := domain.ParseACL(got.Access)
	require.NoError(t, err)
	assert.True(t, acl.Public)

	err = s.SetHistogramAccess(ctx, "01JNOPEXIST0000000000000000", buildTestACL(true))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testNewestImageFile(t *testing.T, s Store) {
	ctx := context.Background()

	item := seedItem(t, s, "user-1", buildTestACL(true))

	t.Run("no files", func(t *testing.T) {
		file, err := s.NewestImageFile(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, file)
	})

	t.Run("skips non-image files", func(t *testing.T) {
		seedFile(t, s, item.ID, "notes.txt", "text/plain")
		seedFile(t, s, item.ID, "scan-1.tif", "image/tiff")
		second := seedFile(t, s, item.ID, "scan-2.tif", "image/tiff")

		file, err := s.NewestImageFile(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, file)
		// Equal created_at timestamps fall back to ID ordering,
		// and ULIDs are monotonic within the process
		assert.Equal(t, second.ID, file.ID)
	})

	t.Run("raw binary counts as an image source", func(t *testing.T) {
		// Scanner exports often arrive with no better media type.
		raw := seedFile(t, s, item.ID, "scan-3.raw", "application/octet-stream")

		file, err := s.NewestImageFile(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, file)
		assert.Equal(t, raw.ID, file.ID)
	})
}

func testDefaultBins(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("falls back to default", func(t *testing.T) {
		bins, err := s.DefaultBins(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultBinCount, bins)
	})

	t.Run("round trips a stored value", func(t *testing.T) {
		require.NoError(t, s.SetDefaultBins(ctx, 64))

		bins, err := s.DefaultBins(ctx)
		require.NoError(t, err)
		assert.Equal(t, 64, bins)
	})

	t.Run("zero is allowed", func(t *testing.T) {
		require.NoError(t, s.SetDefaultBins(ctx, 0))
	})

	t.Run("negative is rejected", func(t *testing.T) {
		err := s.SetDefaultBins(ctx, -1)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}
