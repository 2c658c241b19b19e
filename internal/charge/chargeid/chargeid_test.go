package chargeid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cases := map[int64]string{
		0:  "LLC-0",
		9:  "LLC-9",
		10: "LLC-B",
		30: "LLC-Z",
		31: "LLC-10",
		// 2*31*31 + 5*31 + 17
		2094: "LLC-25K",
	}
	for id, want := range cases {
		got, err := Encode(id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "id %d", id)
	}
}

func TestEncodeRejectsNegative(t *testing.T) {
	_, err := Encode(-1)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEncodeString(t *testing.T) {
	got, err := EncodeString("31")
	require.NoError(t, err)
	assert.Equal(t, "LLC-10", got)

	_, err = EncodeString("LLC-10")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeInvertsEncode(t *testing.T) {
	for _, id := range []int64{0, 1, 30, 31, 961, 123456789, math.MaxInt64} {
		ref, err := Encode(id)
		require.NoError(t, err)

		got, err := Decode(ref)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestDecodeIsLenient(t *testing.T) {
	got, err := Decode("llc-25k")
	require.NoError(t, err)
	assert.Equal(t, int64(2094), got)

	got, err = Decode("25K")
	require.NoError(t, err)
	assert.Equal(t, int64(2094), got)
}

func TestDecodeRejects(t *testing.T) {
	for _, ref := range []string{"", "LLC-", "LLC-A", "LLC-1E", "LLC-ZZZZZZZZZZZZZZZ"} {
		_, err := Decode(ref)
		assert.ErrorIs(t, err, ErrInvalid, ref)
	}
}
