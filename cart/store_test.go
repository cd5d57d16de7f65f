package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, *MemoryPersister) {
	t.Helper()
	p := NewMemoryPersister()
	return newStore("session-1", p), p
}

func TestAddItemMergesByID(t *testing.T) {
	s, _ := testStore(t)

	for i := 0; i < 3; i++ {
		s.AddItem(map[string]interface{}{"id": "42", "name": "Shawl", "price": 45.0})
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "42", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemMergesNumericAndStringIDs(t *testing.T) {
	s, _ := testStore(t)

	s.AddItem(map[string]interface{}{"id": 42.0, "name": "Shawl", "price": 45.0})
	s.AddItem(map[string]interface{}{"id": "42", "name": "Shawl", "price": 45.0})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItemNilOrMissingIDIsNoOp(t *testing.T) {
	s, _ := testStore(t)

	s.AddItem(nil)
	s.AddItem(map[string]interface{}{"name": "no id"})
	s.AddItem(map[string]interface{}{"id": ""})

	assert.Empty(t, s.Items())
}

func TestAddItemSanitizesFields(t *testing.T) {
	s, _ := testStore(t)

	s.AddItem(map[string]interface{}{"id": "x1", "price": "not a number"})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Product", items[0].Name)
	assert.Equal(t, 0.0, items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)
	assert.NotEmpty(t, items[0].ImageURL) // placeholder
}

func TestAddItemImageFallbackChain(t *testing.T) {
	s, _ := testStore(t)

	s.AddItem(map[string]interface{}{
		"id":        "a",
		"images":    []interface{}{"first.jpg", "second.jpg"},
		"image_url": "single.jpg",
	})
	s.AddItem(map[string]interface{}{"id": "b", "image": "generic.jpg"})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "first.jpg", items[0].ImageURL)
	assert.Equal(t, "generic.jpg", items[1].ImageURL)
}

func TestAggregateRecomputedAfterEveryMutation(t *testing.T) {
	s, _ := testStore(t)

	s.AddItem(map[string]interface{}{"id": "1", "price": 10.0})
	s.AddItem(map[string]interface{}{"id": "2", "price": 5.5})
	s.SetQuantity("2", 4)

	agg := s.Aggregate()
	assert.Equal(t, 10.0+5.5*4, agg.Total)
	assert.Equal(t, 5, agg.ItemCount)

	s.RemoveItem("2")
	agg = s.Aggregate()
	assert.Equal(t, 10.0, agg.Total)
	assert.Equal(t, 1, agg.ItemCount)
}

func TestSetQuantityClampsToFlooredMinimumOne(t *testing.T) {
	s, _ := testStore(t)
	s.AddItem(map[string]interface{}{"id": "1", "price": 10.0})

	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-3, 1},
		{0.9, 1},
		{2.7, 2},
		{5, 5},
	}
	for _, tc := range cases {
		s.SetQuantity("1", tc.in)
		assert.Equal(t, tc.want, s.Items()[0].Quantity, "quantity %v", tc.in)
	}

	// Unknown id is a no-op.
	s.SetQuantity("missing", 7)
	require.Len(t, s.Items(), 1)
}

func TestPersistenceRoundTrip(t *testing.T) {
	p := NewMemoryPersister()
	s := newStore("session-1", p)

	s.Clear(context.Background())
	s.AddItem(map[string]interface{}{"id": "A", "name": "Case", "price": 20.0})
	s.AddItem(map[string]interface{}{"id": "B", "name": "Strap", "price": 8.0})

	// Simulate a reload: fresh store, same persisted slot.
	reloaded := newStore("session-1", p)
	reloaded.restore(context.Background())

	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "B", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestRestoreToleratesCorruptSnapshots(t *testing.T) {
	for _, corrupt := range []string{"not json", "{}", `"just a string"`, "42"} {
		p := NewMemoryPersister()
		require.NoError(t, p.Save(context.Background(), "session-1", []byte(corrupt)))

		s := newStore("session-1", p)
		s.restore(context.Background())
		assert.Empty(t, s.Items(), "snapshot %q", corrupt)
	}
}

func TestClearErasesSnapshot(t *testing.T) {
	p := NewMemoryPersister()
	s := newStore("session-1", p)
	s.AddItem(map[string]interface{}{"id": "1", "price": 3.0})

	s.Clear(context.Background())

	assert.Empty(t, s.Items())
	_, err := p.Load(context.Background(), "session-1")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestAggregateSurvivesMalformedEntries(t *testing.T) {
	p := NewMemoryPersister()
	// A hand-edited snapshot with a negative quantity.
	require.NoError(t, p.Save(context.Background(), "session-1",
		[]byte(`[{"id":"1","name":"ok","price":10,"quantity":2},{"id":"2","name":"bad","price":5,"quantity":-4}]`)))

	s := newStore("session-1", p)
	s.restore(context.Background())

	agg := s.Aggregate()
	assert.Equal(t, 20.0, agg.Total)
	assert.Equal(t, 2, agg.ItemCount)
}
