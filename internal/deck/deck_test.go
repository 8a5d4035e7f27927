package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Has52UniqueCards(t *testing.T) {
	d := New()
	assert.Equal(t, 52, d.Remaining())

	seen := make(map[string]bool, 52)
	cards := d.Draw(52)
	for _, c := range cards {
		assert.False(t, seen[c.String()], "duplicate card %s", c)
		seen[c.String()] = true
	}
	assert.Equal(t, 0, d.Remaining())
}

func TestShuffle_PreservesCardSet(t *testing.T) {
	d := New()
	before := make(map[string]bool, 52)
	for _, c := range d.Draw(52) {
		before[c.String()] = true
	}

	d.Reset()
	require.NoError(t, d.Shuffle())
	after := d.Draw(52)
	assert.Len(t, after, 52)
	for _, c := range after {
		assert.True(t, before[c.String()], "shuffled deck produced unknown card %s", c)
	}
}

func TestDraw_PanicsWhenExhausted(t *testing.T) {
	d := New()
	d.Draw(52)
	assert.Panics(t, func() { d.Draw(1) })
}

func TestReset_RestoresFullDeck(t *testing.T) {
	d := New()
	d.Draw(10)
	d.Reset()
	assert.Equal(t, 52, d.Remaining())
}
