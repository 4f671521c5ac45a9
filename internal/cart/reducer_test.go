package cart

import (
	"math"
	"testing"

	"spiceshop/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basil(qty int64) Line {
	return Line{ID: "a", Title: "Basil", UnitPrice: money.FromMinor(1000), Quantity: qty}
}

func apply(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func TestAddItem_MergesSameID(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(1)}, AddItem{Line: basil(2)})

	l, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, int64(3), l.Quantity)
	assert.Equal(t, "30.00", l.Total().String())
	assert.Equal(t, 1, s.Len())
}

func TestAddItem_MergeLaw(t *testing.T) {
	adds := []int64{1, 4, 2, 7, 1}

	s := Empty()
	var sum int64
	for _, q := range adds {
		s = Reduce(s, AddItem{Line: basil(q)})
		sum += q
	}

	l, _ := s.Line("a")
	assert.Equal(t, sum, l.Quantity)
}

func TestAddItem_KeepsFirstTitleAndPrice(t *testing.T) {
	second := basil(1)
	second.Title = "Basil (renamed)"
	second.UnitPrice = money.FromMinor(9999)

	s := apply(Empty(), AddItem{Line: basil(1)}, AddItem{Line: second})

	l, _ := s.Line("a")
	assert.Equal(t, "Basil", l.Title)
	assert.Equal(t, money.FromMinor(1000), l.UnitPrice)
}

func TestAddItem_IgnoresNonPositiveQuantity(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(0)}, AddItem{Line: basil(-2)})
	assert.True(t, s.IsEmpty())
}

func TestAddItem_DoesNotTouchIsOpen(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(1)})
	assert.False(t, s.IsOpen)

	s = apply(Empty(), ToggleCartVisibility{}, AddItem{Line: basil(1)})
	assert.True(t, s.IsOpen)
}

func TestTotalsAndItemCount(t *testing.T) {
	s := apply(Empty(),
		AddItem{Line: Line{ID: "a", Title: "Basil", UnitPrice: money.FromMinor(500), Quantity: 2}},
		AddItem{Line: Line{ID: "b", Title: "Thyme", UnitPrice: money.FromMinor(750), Quantity: 1}},
	)

	assert.Equal(t, "17.50", s.Total().String())
	assert.Equal(t, int64(3), s.ItemCount())

	// 再計算されること
	s = Reduce(s, UpdateQuantity{ID: "b", Quantity: 3})
	assert.Equal(t, "32.50", s.Total().String())
	assert.Equal(t, int64(5), s.ItemCount())
}

func TestUpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for _, q := range []int64{0, -1} {
		s := apply(Empty(), AddItem{Line: basil(2)}, UpdateQuantity{ID: "a", Quantity: q})
		removed := apply(Empty(), AddItem{Line: basil(2)}, RemoveItem{ID: "a"})

		assert.True(t, s.IsEmpty())
		assert.Equal(t, removed.Lines(), s.Lines())
	}
}

func TestAddItem_ClampsHugeQuantity(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(math.MaxInt64)}, AddItem{Line: basil(1)})

	l, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, MaxLineQuantity, l.Quantity)
	assert.Equal(t, MaxLineQuantity, s.ItemCount())
	assert.Greater(t, s.Total().Minor(), int64(0))

	s = apply(Empty(), AddItem{Line: basil(MaxLineQuantity - 1)}, AddItem{Line: basil(math.MaxInt64)})
	l, _ = s.Line("a")
	assert.Equal(t, MaxLineQuantity, l.Quantity)
}

func TestUpdateQuantity_ClampsToMax(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(1)}, UpdateQuantity{ID: "a", Quantity: math.MaxInt64})

	l, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, MaxLineQuantity, l.Quantity)
	assert.Equal(t, "99990.00", s.Total().String())
}

func TestUpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	before := apply(Empty(), AddItem{Line: basil(2)})
	after := Reduce(before, UpdateQuantity{ID: "zzz", Quantity: 5})

	assert.Equal(t, before.Lines(), after.Lines())
}

func TestRemoveItem_Idempotent(t *testing.T) {
	s := apply(Empty(),
		AddItem{Line: basil(1)},
		AddItem{Line: Line{ID: "b", Title: "Thyme", UnitPrice: 100, Quantity: 1}},
	)

	once := Reduce(s, RemoveItem{ID: "a"})
	twice := Reduce(once, RemoveItem{ID: "a"})

	assert.Equal(t, once.Lines(), twice.Lines())
	assert.Equal(t, 1, twice.Len())
}

func TestClearCart_KeepsIsOpen(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(2)}, ToggleCartVisibility{}, ClearCart{})

	assert.True(t, s.IsEmpty())
	assert.True(t, s.IsOpen)
	assert.Equal(t, int64(0), s.ItemCount())
	assert.Equal(t, money.Money(0), s.Total())
}

func TestToggleCartVisibility(t *testing.T) {
	s := Reduce(Empty(), ToggleCartVisibility{})
	assert.True(t, s.IsOpen)
	s = Reduce(s, ToggleCartVisibility{})
	assert.False(t, s.IsOpen)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := apply(Empty(), AddItem{Line: basil(1)})

	_ = Reduce(before, AddItem{Line: basil(5)})
	_ = Reduce(before, RemoveItem{ID: "a"})
	_ = Reduce(before, UpdateQuantity{ID: "a", Quantity: 9})

	l, ok := before.Line("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), l.Quantity)
}

func TestLines_DisplayOrder(t *testing.T) {
	s := apply(Empty(),
		AddItem{Line: Line{ID: "c", Quantity: 1}},
		AddItem{Line: Line{ID: "a", Quantity: 1}},
		AddItem{Line: Line{ID: "b", Quantity: 1}},
		AddItem{Line: Line{ID: "c", Quantity: 1}},
		RemoveItem{ID: "a"},
	)

	ids := []string{}
	for _, l := range s.Lines() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"c", "b"}, ids)
}

func TestSnapshot_IsNotAliased(t *testing.T) {
	s := apply(Empty(), AddItem{Line: basil(2)})
	snap := s.Snapshot()

	s = apply(s, UpdateQuantity{ID: "a", Quantity: 10}, ClearCart{})

	require.Len(t, snap, 1)
	assert.Equal(t, int64(2), snap[0].Quantity)
}
