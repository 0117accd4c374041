package errman_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numlink/numlink/errman"
)

func TestCatalogWellFormed(t *testing.T) {
	r := errman.NewRegistry()
	entries := r.Entries()
	require.NotEmpty(t, entries)

	names := make(map[string]bool, len(entries))
	ids := make(map[int]bool, len(entries))
	for _, e := range entries {
		assert.NotEmpty(t, e.Name())
		assert.NotEmpty(t, e.Message(), "entry %s has no message", e.Name())
		assert.False(t, names[e.Name()], "duplicate name %s", e.Name())
		assert.False(t, ids[e.ID()], "duplicate id %d", e.ID())
		names[e.Name()] = true
		ids[e.ID()] = true
	}
}

func TestCatalogKnownEntries(t *testing.T) {
	r := errman.NewRegistry()
	cases := []struct {
		name string
		id   int
	}{
		{errman.VersionError, 7},
		{errman.FunctionError, 6},
		{errman.MemoryError, 5},
		{errman.NumericalError, 4},
		{errman.DimensionsError, 3},
		{errman.RankError, 2},
		{errman.TypeError, 1},
		{errman.NoError, 0},
		{errman.MArgumentLibDataError, -1},
	}
	for _, tc := range cases {
		e, err := r.Find(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.id, e.ID(), tc.name)
	}

	// The taxonomy groups are all present.
	for _, name := range []string{
		errman.TensorCloneError,
		errman.ImageNewError,
		errman.NumericArrayConversionError,
		errman.MLLoopbackStackSizeError,
		errman.DLSharedDataStore,
		errman.ArgumentCreateNull,
		errman.Aborted,
	} {
		_, err := r.Find(name)
		require.NoError(t, err, name)
	}
}

func TestErrorStringAndDebug(t *testing.T) {
	r := errman.NewRegistry()
	e, err := r.Find(errman.TypeError)
	require.NoError(t, err)

	assert.Contains(t, e.Error(), "TypeError")
	assert.Contains(t, e.Error(), "(1)")

	annotated := e.WithDebug("argument %d", 3)
	assert.Contains(t, annotated.Error(), "argument 3")
	assert.Equal(t, e.ID(), annotated.ID())
	assert.Empty(t, e.Debug(), "annotation must not mutate the registry entry")
}
