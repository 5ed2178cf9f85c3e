package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/repository"
)

const testKey = "cafe_staff_feedback_v1"

func sampleRecords() []domain.FeedbackRecord {
	return []domain.FeedbackRecord{
		{
			Timestamp:  "2026-08-30T09:00:00Z",
			EmployeeID: "e1",
			Rating:     5,
			Comment:    "Great service",
			OrderCode:  "A123",
			Source:     "web",
			Device:     "unknown",
		},
		{
			Timestamp:  "2026-08-30T09:05:00Z",
			EmployeeID: "e3",
			Rating:     4,
			Comment:    "",
			OrderCode:  "",
			Source:     "web",
			Device:     "unknown",
		},
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "feedback.json"), testKey, zap.NewNop())

	records := store.Load(context.Background())

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0o644))

	store := repository.NewFileStore(path, testKey, zap.NewNop())
	records := store.Load(context.Background())

	assert.Empty(t, records)
}

func TestFileStoreLoadWrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"some_other_key":[{"rating":5}]}`), 0o644))

	store := repository.NewFileStore(path, testKey, zap.NewNop())

	assert.Empty(t, store.Load(context.Background()))
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "feedback.json"), testKey, zap.NewNop())
	ctx := context.Background()
	want := sampleRecords()

	require.NoError(t, store.Save(ctx, want))
	got := store.Load(ctx)

	assert.Equal(t, want, got, "round-trip must preserve records and order")
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "feedback.json"), testKey, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRecords()))
	require.NoError(t, store.Save(ctx, sampleRecords()[:1]))

	assert.Len(t, store.Load(ctx), 1)
}

func TestFileStoreSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "feedback.json")
	store := repository.NewFileStore(path, testKey, zap.NewNop())

	require.NoError(t, store.Save(context.Background(), sampleRecords()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	assert.Empty(t, store.Load(ctx))

	want := sampleRecords()
	require.NoError(t, store.Save(ctx, want))
	got := store.Load(ctx)
	assert.Equal(t, want, got)

	// Mutating the returned slice must not leak back into the store.
	got[0].Rating = 1
	assert.Equal(t, 5, store.Load(ctx)[0].Rating)
}

func TestMemoryStorePing(t *testing.T) {
	assert.NoError(t, repository.NewMemoryStore().Ping(context.Background()))
}
