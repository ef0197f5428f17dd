//go:build !gocv
// +build !gocv

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFilter_GoCVDisabled(t *testing.T) {
	_, err := NewFilter(EngineGoCV)
	require.ErrorIs(t, err, errGoCVDisabled)
}
