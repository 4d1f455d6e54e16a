package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/seed"
)

func newStore(t *testing.T) *seed.Store {
	t.Helper()

	return seed.NewStore(numctx.Default())
}

func TestStore_SetGet(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("drag", "0.6819"))

	v, err := s.Get("drag")
	require.NoError(t, err)

	canon, err := s.Context().CanonicalString(v)
	require.NoError(t, err)
	assert.Equal(t, "0.6819000", canon)
}

func TestStore_DuplicateSeed(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("sector", "163"))

	err := s.Set("sector", "164")
	assert.ErrorIs(t, err, seed.ErrDuplicateSeed)

	// The original binding survives the rejected rebind.
	v, err := s.Int64("sector")
	require.NoError(t, err)
	assert.Equal(t, int64(163), v)
}

func TestStore_UnknownSeed(t *testing.T) {
	s := newStore(t)
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, seed.ErrUnknownSeed)

	_, err = s.Int64("missing")
	assert.ErrorIs(t, err, seed.ErrUnknownSeed)
}

func TestStore_FrozenRejectsSet(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("joint", "153"))
	assert.False(t, s.Frozen())

	s.Freeze()
	assert.True(t, s.Frozen())

	err := s.Set("axis", "135")
	assert.ErrorIs(t, err, seed.ErrStoreFrozen)
	assert.False(t, s.Has("axis"))

	// Reads keep working after freeze.
	v, err := s.Int64("joint")
	require.NoError(t, err)
	assert.Equal(t, int64(153), v)
}

func TestStore_EmptyName(t *testing.T) {
	s := newStore(t)
	assert.ErrorIs(t, s.Set("", "1"), seed.ErrEmptyName)
}

func TestStore_BadLiteral(t *testing.T) {
	s := newStore(t)
	err := s.Set("junk", "twelve")
	assert.ErrorIs(t, err, numctx.ErrArithmeticFatal)
	assert.False(t, s.Has("junk"), "a failed Set must not bind the name")
}

func TestStore_Int64RejectsFractional(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("drag", "0.6819"))

	_, err := s.Int64("drag")
	assert.ErrorIs(t, err, seed.ErrNotInteger)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("divisor", "144"))

	v1, err := s.Get("divisor")
	require.NoError(t, err)
	v1.SetInt64(7) // mutate the returned copy

	v2, err := s.Get("divisor")
	require.NoError(t, err)
	got, err := v2.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(144), got, "store values must be isolated from caller mutation")
}

func TestStore_NamesSorted(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("joint", "153"))
	require.NoError(t, s.Set("axis", "135"))
	require.NoError(t, s.Set("sector", "163"))

	assert.Equal(t, []string{"axis", "joint", "sector"}, s.Names())
}
