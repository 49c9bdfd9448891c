package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
}

func TestDocumentStore_Create_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now()
	doc := &domain.Document{
		ID:          "doc-1",
		Title:       "Test Document",
		TextContent: "hello world",
		UploadedAt:  now,
	}

	require.NoError(t, store.Create(ctx, doc))

	saved, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Document", saved.Title)
	assert.Equal(t, "hello world", saved.TextContent)
	assert.False(t, saved.Processed)
}

func TestDocumentStore_Create_Invalid(t *testing.T) {
	store := NewDocumentStore()
	assert.ErrorIs(t, store.Create(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Create(context.Background(), &domain.Document{}), domain.ErrInvalidInput)
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.Document{ID: "doc-1", Title: "Original"}))

	err := store.Update(ctx, &domain.Document{ID: "doc-1", Title: "Original", Processed: true, ChunkCount: 4})
	require.NoError(t, err)

	saved, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, saved.Processed)
	assert.Equal(t, 4, saved.ChunkCount)
}

func TestDocumentStore_Update_NotFound(t *testing.T) {
	store := NewDocumentStore()
	err := store.Update(context.Background(), &domain.Document{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	_, err := NewDocumentStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Get_ReturnsCopy(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.Document{ID: "doc-1", Title: "Original"}))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	got.Title = "Changed"

	again, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Title)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.Document{ID: "doc-1"}))

	require.NoError(t, store.Delete(ctx, "doc-1"))
	require.NoError(t, store.Delete(ctx, "doc-1"))

	_, err := store.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_List_MostRecentFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, &domain.Document{ID: "old", UploadedAt: base}))
	require.NoError(t, store.Create(ctx, &domain.Document{ID: "new", UploadedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, store.Create(ctx, &domain.Document{ID: "mid", UploadedAt: base.Add(time.Hour)}))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "mid", docs[1].ID)
	assert.Equal(t, "old", docs[2].ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			docID := fmt.Sprintf("doc-%d", id)
			_ = store.Create(ctx, &domain.Document{ID: docID})
			_, _ = store.Get(ctx, docID)
			_, _ = store.List(ctx)
		}(i)
	}

	wg.Wait()
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}
