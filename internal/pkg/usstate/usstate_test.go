package usstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, in := range []string{"Michigan", "michigan", " MI ", "mi"} {
		s, ok := Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, "MI", s.Abbr)
		assert.Equal(t, "Michigan", s.Name)
	}

	_, ok := Lookup("Ontario")
	assert.False(t, ok)
}

func TestAllHasStatesAndDC(t *testing.T) {
	all := All()

	assert.Len(t, all, 51)
	assert.Equal(t, "Alabama", all[0].Name)
	assert.Equal(t, "Wyoming", all[len(all)-1].Name)
}

func TestMatchesAddress(t *testing.T) {
	michigan, _ := Lookup("Michigan")

	tests := []struct {
		address string
		want    bool
	}{
		{"123 Main St, Anytown, MI 48047", true},
		{"123 Main St, Anytown, WI 48047", false},
		{"123 Main St, Anytown, MI, USA", true},
		{"123 Main St, Anytown, MI", true},
		{"123 Main St, MIDLAND, TX 79701", false},
		{"123 Main St, Anytown, Michigan 48047", false},
		{"123 Main St, Anytown MI 48047", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, michigan.MatchesAddress(tt.address), tt.address)
	}
}

func TestZeroStateMatchesNothing(t *testing.T) {
	assert.False(t, State{}.MatchesAddress("1 Main St, Anytown, MI 48047"))
}
