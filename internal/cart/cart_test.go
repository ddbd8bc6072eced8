package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(NewMemoryStorage())
	require.NoError(t, err)
	return store
}

func product(id int, name, price string) ProductSummary {
	return ProductSummary{
		ProductID: id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
	}
}

func TestAddItem_RepeatedAddsAggregateQuantity(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	}

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(3, "C", "1.00")))
	require.NoError(t, store.AddItem(product(1, "A", "2.00")))
	require.NoError(t, store.AddItem(product(2, "B", "3.00")))
	require.NoError(t, store.AddItem(product(3, "C", "1.00")))

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{items[0].ProductID, items[1].ProductID, items[2].ProductID})
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItem_ThenAddStartsFresh(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	require.NoError(t, store.RemoveItem(1))
	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem_AbsentProductIsNoop(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	require.NoError(t, store.RemoveItem(42))

	assert.Len(t, store.Items(), 1)
}

func TestUpdateQuantity_ZeroAndNegativeRemove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	require.NoError(t, store.UpdateQuantity(1, 0))
	assert.Empty(t, store.Items())

	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	require.NoError(t, store.UpdateQuantity(1, -3))
	assert.Empty(t, store.Items())
}

func TestUpdateQuantity_ReplacesQuantity(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(1, "Camiseta", "29.90")))
	require.NoError(t, store.UpdateQuantity(1, 7))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 7, store.ItemCount())
}

func TestTotalAndItemCount(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(1, "A", "10.00")))
	require.NoError(t, store.AddItem(product(1, "A", "10.00")))
	require.NoError(t, store.AddItem(product(2, "B", "5.00")))

	assert.True(t, store.Total().Equal(decimal.RequireFromString("25.00")), "got total %s", store.Total())
	assert.Equal(t, 3, store.ItemCount())
}

func TestClear_EmptiesCart(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddItem(product(1, "A", "10.00")))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Items())
	assert.True(t, store.Total().IsZero())
	assert.Equal(t, 0, store.ItemCount())
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	store, err := NewStore(NewFileStorage(path))
	require.NoError(t, err)
	require.NoError(t, store.AddItem(product(7, "Camiseta", "29.90")))
	require.NoError(t, store.AddItem(product(7, "Camiseta", "29.90")))
	require.NoError(t, store.AddItem(product(9, "Calça", "89.90")))

	reloaded, err := NewStore(NewFileStorage(path))
	require.NoError(t, err)

	want := store.Items()
	got := reloaded.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ProductID, got[i].ProductID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Price.Equal(got[i].Price))
	}
	assert.True(t, store.Total().Equal(reloaded.Total()))
	assert.Equal(t, store.ItemCount(), reloaded.ItemCount())
}

func TestFileStorage_MissingFileLoadsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	store, err := NewStore(NewFileStorage(path))
	require.NoError(t, err)
	assert.Empty(t, store.Items())
}

func TestFileStorage_CorruptFileLoadsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewStore(NewFileStorage(path))
	require.NoError(t, err)
	assert.Empty(t, store.Items())
}

func TestMutationsPersistSynchronously(t *testing.T) {
	storage := NewMemoryStorage()
	store, err := NewStore(storage)
	require.NoError(t, err)

	require.NoError(t, store.AddItem(product(1, "A", "10.00")))
	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Len(t, persisted, 1)

	require.NoError(t, store.RemoveItem(1))
	persisted, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}
