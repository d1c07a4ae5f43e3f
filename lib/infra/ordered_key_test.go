package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type version struct {
	major, minor int
}

func (v version) Compare(o version) int64 {
	if v.major != o.major {
		return OrderedKeyCompare(v.major, o.major)
	}
	return OrderedKeyCompare(v.minor, o.minor)
}

type userID uint32

func TestOrderedKeyCompare(t *testing.T) {
	assert.Equal(t, int64(0), OrderedKeyCompare(1, 1))
	assert.Equal(t, int64(-1), OrderedKeyCompare("a", "b"))
	assert.Equal(t, int64(1), OrderedKeyCompare(2.5, 1.5))
}

func TestNaturalCompare(t *testing.T) {
	res, ok := NaturalCompare(3, 5)
	require.True(t, ok)
	require.Equal(t, int64(-1), res)

	res, ok = NaturalCompare(userID(9), userID(2))
	require.True(t, ok)
	require.Equal(t, int64(1), res)

	res, ok = NaturalCompare("xtree", "xtree")
	require.True(t, ok)
	require.Equal(t, int64(0), res)

	res, ok = NaturalCompare(version{1, 2}, version{1, 10})
	require.True(t, ok)
	require.Equal(t, int64(-1), res)

	_, ok = NaturalCompare(math.NaN(), 1.0)
	require.False(t, ok)

	_, ok = NaturalCompare([]int{1}, []int{2})
	require.False(t, ok)

	_, ok = NaturalCompare[any](nil, nil)
	require.False(t, ok)

	_, ok = NaturalCompare[any](1, "1")
	require.False(t, ok)
}
