//go:build amd64 || arm64

package kmeanspp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberID(t *testing.T) {
	id, err := memberID(math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), id)

	_, err = memberID(math.MaxUint32 + 1)
	assert.ErrorContains(t, err, "point 4294967296")

	_, err = memberID(-1)
	assert.Error(t, err)
}
