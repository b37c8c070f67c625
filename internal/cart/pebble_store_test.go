package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPebbleStore_RoundTripAndClear(t *testing.T) {
	st, err := NewPebbleStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	items, err := st.Load("missing")
	require.NoError(t, err)
	assert.Empty(t, items)

	p1 := uuid.New()
	c := Load("session-a", st, zap.NewNop())
	c.AddItem(LineItem{ProductID: p1, Name: "Resin coaster", Price: 349, Qty: 2, Colour: "Teal"})

	restored := Load("session-a", st, zap.NewNop())
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, 698.0, restored.Subtotal())

	// other sessions are isolated
	assert.Equal(t, 0, Load("session-b", st, zap.NewNop()).Len())

	restored.Clear()
	items, err = st.Load("session-a")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPebbleStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	st, err := NewPebbleStore(dir)
	require.NoError(t, err)

	require.NoError(t, st.Save("s", []LineItem{{ProductID: uuid.New(), Price: 10, Qty: 3}}))
	require.NoError(t, st.Close())

	st, err = NewPebbleStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	items, err := st.Load("s")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Qty)
}
