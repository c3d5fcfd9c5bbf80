package store

import (
	"context"
	"testing"

	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestItemRepository_Create(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, item.NewItem{Name: strPtr("Widget"), Description: strPtr("x")})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "Widget", created.Name)
	require.NotNil(t, created.Description)
	require.Equal(t, "x", *created.Description)
	require.False(t, created.CreatedAt.IsZero())
}

func TestItemRepository_CreateWithoutDescription(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, item.NewItem{Name: strPtr("bare")})
	require.NoError(t, err)
	require.Nil(t, created.Description)
}

func TestItemRepository_CreateEmptyNameAccepted(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)

	created, err := repo.Create(context.Background(), item.NewItem{Name: strPtr("")})
	require.NoError(t, err)
	require.Equal(t, "", created.Name)
}

func TestItemRepository_CreateMissingNameRejected(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)

	_, err := repo.Create(context.Background(), item.NewItem{})
	require.Error(t, err)
}

func TestItemRepository_IDsIncreaseAfterDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	var last int64
	for _, name := range []string{"a", "b", "c"} {
		created, err := repo.Create(ctx, item.NewItem{Name: strPtr(name)})
		require.NoError(t, err)
		require.Greater(t, created.ID, last)
		last = created.ID
	}

	// Removing the highest id must not let the next insert reuse it.
	require.NoError(t, repo.Delete(ctx, last))
	created, err := repo.Create(ctx, item.NewItem{Name: strPtr("d")})
	require.NoError(t, err)
	require.Greater(t, created.ID, last)
}

func TestItemRepository_ListOrderedByID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for _, name := range []string{"first", "second", "third", "fourth"} {
		_, err := repo.Create(ctx, item.NewItem{Name: strPtr(name)})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, 2))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []int64{1, 3, 4}, ids)
	require.Equal(t, "fourth", items[2].Name)
	require.False(t, items[0].CreatedAt.IsZero())
}

func TestItemRepository_DeleteMissingIsNoop(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, item.NewItem{Name: strPtr("keep")})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 999))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestItemRepository_CreateManyAndCount(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateMany(ctx, nil))
	require.NoError(t, repo.CreateMany(ctx, item.SeedItems()))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Sample Item 1", items[0].Name)
	require.Equal(t, "This is the second sample item", *items[1].Description)
}

func TestItemRepository_ClosedDB(t *testing.T) {
	db := NewTestDB(t)
	repo := NewItemRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background())
	require.Error(t, err)
}
