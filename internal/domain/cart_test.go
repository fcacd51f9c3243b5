package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLine(t *testing.T) {
	t.Run("appends a new line", func(t *testing.T) {
		c := NewCart("user-1")

		err := c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 1)

		require.NoError(t, err)
		require.Len(t, c.Lines, 1)
		assert.NotEmpty(t, c.Lines[0].ID)
		assert.Equal(t, "prod-hoodie-drop", c.Lines[0].ProductID)
		assert.Equal(t, 1, c.Lines[0].Quantity)
		assert.Equal(t, 3, c.Lines[0].StockCeiling)
	})

	t.Run("merges duplicate product and variant", func(t *testing.T) {
		c := NewCart("user-1")
		require.NoError(t, c.AddLine("prod-tee-classic", "var-tee-m-black", 3900, 10, 2))
		firstID := c.Lines[0].ID

		err := c.AddLine("prod-tee-classic", "var-tee-m-black", 3900, 10, 1)

		require.NoError(t, err)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, firstID, c.Lines[0].ID)
		assert.Equal(t, 3, c.Lines[0].Quantity)
	})

	t.Run("same product different variant gets its own line", func(t *testing.T) {
		c := NewCart("user-1")
		require.NoError(t, c.AddLine("prod-tee-classic", "var-tee-m-black", 3900, 10, 1))

		err := c.AddLine("prod-tee-classic", "var-tee-l-black", 3900, 10, 1)

		require.NoError(t, err)
		assert.Len(t, c.Lines, 2)
	})

	t.Run("silently caps at the stock ceiling", func(t *testing.T) {
		c := NewCart("user-1")

		err := c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 5)

		require.NoError(t, err)
		assert.Equal(t, 3, c.Lines[0].Quantity)
	})

	t.Run("merge caps the combined quantity", func(t *testing.T) {
		c := NewCart("user-1")
		require.NoError(t, c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 2))

		err := c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 2)

		require.NoError(t, err)
		assert.Equal(t, 3, c.Lines[0].Quantity)
	})

	t.Run("zero stock leaves the cart untouched", func(t *testing.T) {
		c := NewCart("user-1")

		err := c.AddLine("prod-jacket-wintery", "var-jacket-l-navy", 12900, 0, 1)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("re-adding a sold-out variant drops the line", func(t *testing.T) {
		c := NewCart("user-1")
		require.NoError(t, c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 2))

		// the variant sold out between the two adds
		err := c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 0, 1)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty(), "a line must never stay in the cart with quantity below one")
	})

	t.Run("merge refreshes price and ceiling", func(t *testing.T) {
		c := NewCart("user-1")
		require.NoError(t, c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 1))

		err := c.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 7900, 5, 1)

		require.NoError(t, err)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, int64(7900), c.Lines[0].UnitPriceCents)
		assert.Equal(t, 5, c.Lines[0].StockCeiling)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		c := NewCart("user-1")

		assert.ErrorIs(t, c.AddLine("prod-1", "var-1", 8900, 3, 0), ErrValidation)
		assert.ErrorIs(t, c.AddLine("prod-1", "var-1", 8900, -1, 1), ErrValidation)
		assert.ErrorIs(t, c.AddLine("prod-1", "var-1", -1, 3, 1), ErrValidation)
		assert.ErrorIs(t, c.AddLine("", "var-1", 8900, 3, 1), ErrValidation)
		assert.ErrorIs(t, c.AddLine("prod-1", "", 8900, 3, 1), ErrValidation)
		assert.True(t, c.IsEmpty())
	})
}

func TestSetQuantity(t *testing.T) {
	newCartWithLine := func(t *testing.T, ceiling int) (*Cart, string) {
		t.Helper()
		c := NewCart("user-1")
		require.NoError(t, c.AddLine("prod-tee-classic", "var-tee-m-black", 3900, ceiling, 1))
		return c, c.Lines[0].ID
	}

	t.Run("updates the quantity", func(t *testing.T) {
		c, lineID := newCartWithLine(t, 10)

		require.NoError(t, c.SetQuantity(lineID, 4))

		assert.Equal(t, 4, c.Lines[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c, lineID := newCartWithLine(t, 10)

		require.NoError(t, c.SetQuantity(lineID, 0))

		assert.True(t, c.IsEmpty())
	})

	t.Run("negative removes the line", func(t *testing.T) {
		c, lineID := newCartWithLine(t, 10)

		require.NoError(t, c.SetQuantity(lineID, -2))

		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects quantities above the stock ceiling", func(t *testing.T) {
		c, lineID := newCartWithLine(t, 3)

		err := c.SetQuantity(lineID, 4)

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 1, c.Lines[0].Quantity, "rejected update must not change the line")
	})

	t.Run("unknown line", func(t *testing.T) {
		c, _ := newCartWithLine(t, 10)

		assert.ErrorIs(t, c.SetQuantity("nope", 2), ErrLineNotFound)
	})
}

func TestRemoveLine(t *testing.T) {
	c := NewCart("user-1")
	require.NoError(t, c.AddLine("prod-cap-logo", "var-cap-os-black", 2500, 5, 1))
	lineID := c.Lines[0].ID

	c.RemoveLine(lineID)
	assert.True(t, c.IsEmpty())

	// removing again is a no-op
	c.RemoveLine(lineID)
	assert.True(t, c.IsEmpty())
}

func TestClear(t *testing.T) {
	c := NewCart("user-1")
	require.NoError(t, c.AddLine("prod-cap-logo", "var-cap-os-black", 2500, 5, 1))
	require.NoError(t, c.AddLine("prod-tote-canvas", "var-tote-os-natural", 1900, 5, 2))

	c.Clear()

	assert.True(t, c.IsEmpty())
}
