// ==============================================================================================
// FILE: object/array_unit_test.go
// ==============================================================================================
package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArrayZeroInitialized(t *testing.T) {
	arr := NewArray(NUMBR, 3)
	require.Equal(t, 3, arr.Capacity)
	require.Equal(t, 0, arr.Length)
	for _, s := range arr.Slots {
		require.Equal(t, int64(0), s.(*Int).Value)
	}
}

func TestArrayConfineAppendsAtLength(t *testing.T) {
	arr := NewArray(NUMBR, 2)
	require.Nil(t, arr.Confine(1, 0, &Int{Value: 10}))
	require.Equal(t, 1, arr.Length)
	require.Nil(t, arr.Confine(1, 1, &Int{Value: 20}))
	require.Equal(t, 2, arr.Length)
}

func TestArrayConfineOverwritesExisting(t *testing.T) {
	arr := NewArray(NUMBR, 2)
	require.Nil(t, arr.Confine(1, 0, &Int{Value: 10}))
	require.Nil(t, arr.Confine(1, 0, &Int{Value: 99}))
	require.Equal(t, 1, arr.Length)
	v, err := arr.Access(1, 0)
	require.Nil(t, err)
	require.Equal(t, int64(99), v.(*Int).Value)
}

func TestArrayConfineOutOfRange(t *testing.T) {
	arr := NewArray(NUMBR, 2)
	err := arr.Confine(1, 5, &Int{Value: 1})
	require.NotNil(t, err)
}

func TestArrayDischargeShiftsLeft(t *testing.T) {
	arr := NewArray(NUMBR, 3)
	require.Nil(t, arr.Confine(1, 0, &Int{Value: 1}))
	require.Nil(t, arr.Confine(1, 1, &Int{Value: 2}))
	require.Nil(t, arr.Confine(1, 2, &Int{Value: 3}))

	removed, err := arr.Discharge(1, 0)
	require.Nil(t, err)
	require.Equal(t, int64(1), removed.(*Int).Value)
	require.Equal(t, 2, arr.Length)

	v, err := arr.Access(1, 0)
	require.Nil(t, err)
	require.Equal(t, int64(2), v.(*Int).Value)
}

func TestArrayAccessOutOfRange(t *testing.T) {
	arr := NewArray(NUMBR, 2)
	_, err := arr.Access(1, 0)
	require.NotNil(t, err)
}
