package index

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutRemoveAndQuery(t *testing.T) {
	ix, err := Open()
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ix.Put("old.png", 10, now.Add(-48*time.Hour)))
	require.NoError(t, ix.Put("fresh.png", 20, now.Add(-time.Hour)))

	expired, err := ix.ExpiredBefore(now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"old.png"}, expired)

	require.NoError(t, ix.Remove("old.png"))
	expired, err = ix.ExpiredBefore(now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expired)

	// Removing an unknown name is a no-op.
	assert.NoError(t, ix.Remove("never-indexed.png"))
}

func TestExpiredBeforeIsStrict(t *testing.T) {
	ix, err := Open()
	require.NoError(t, err)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ix.Put("at-cutoff.png", 1, cutoff))
	require.NoError(t, ix.Put("just-older.png", 1, cutoff.Add(-time.Second)))

	expired, err := ix.ExpiredBefore(cutoff)
	require.NoError(t, err)
	assert.Equal(t, []string{"just-older.png"}, expired)
}

func TestPutReplacesExisting(t *testing.T) {
	ix, err := Open()
	require.NoError(t, err)

	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ix.Put("a.png", 1, stamp.Add(-time.Hour)))
	require.NoError(t, ix.Put("a.png", 2, stamp.Add(time.Hour)))

	expired, err := ix.ExpiredBefore(stamp)
	require.NoError(t, err)
	assert.Empty(t, expired, "re-put entry must carry the newer mod time")
}

func TestRebuildFromDirectoryListing(t *testing.T) {
	ix, err := Open()
	require.NoError(t, err)

	// Stale entry that the rebuild must drop.
	require.NoError(t, ix.Put("stale.png", 1, time.Now().Add(-time.Hour)))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dir/kept.png", []byte("xx"), 0o644))
	old := time.Now().Add(-72 * time.Hour)
	require.NoError(t, fs.Chtimes("/dir/kept.png", old, old))

	infos, err := afero.ReadDir(fs, "/dir")
	require.NoError(t, err)
	require.NoError(t, ix.Rebuild(infos))

	all, err := ix.ExpiredBefore(time.Now().Add(24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"kept.png"}, all)
}

func TestOpenInstancesAreIsolated(t *testing.T) {
	a, err := Open()
	require.NoError(t, err)
	b, err := Open()
	require.NoError(t, err)

	require.NoError(t, a.Put("only-in-a.png", 1, time.Now().Add(-time.Hour)))

	fromB, err := b.ExpiredBefore(time.Now())
	require.NoError(t, err)
	assert.Empty(t, fromB)
}
