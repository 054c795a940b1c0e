package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryChoiceStockLevel(t *testing.T) {
	want := map[InventoryChoice]StockLevel{
		InventoryFull:  StockHigh,
		InventoryLow:   StockLow,
		InventoryEmpty: StockNone,
	}

	require.Len(t, InventoryChoices, len(want))
	for _, c := range InventoryChoices {
		got, err := c.StockLevel()
		require.NoError(t, err)
		assert.Equal(t, want[c], got)
		assert.NotEqual(t, StockMedium, got)
	}

	for _, bad := range []InventoryChoice{"Medium", "full", "High", ""} {
		_, err := bad.StockLevel()
		assert.ErrorIs(t, err, ErrInvalidInventoryChoice, string(bad))
	}
}

func TestCheckInIsBy(t *testing.T) {
	u := uuid.New()

	assert.True(t, CheckIn{UserID: &u}.IsBy(u))
	assert.False(t, CheckIn{UserID: &u}.IsBy(uuid.New()))
	assert.False(t, CheckIn{}.IsBy(AnonymousSubmitterID))
	assert.True(t, CheckIn{}.IsAnonymous())
}

func TestProfileFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Profile{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Profile{FirstName: " Ada "}.FullName())
	assert.Equal(t, "", Profile{}.FullName())
}
