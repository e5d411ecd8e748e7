package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "single char", value: "a"},
		{name: "typical id", value: "dima"},
		{name: "max length", value: "syslogin"},
		{name: "digits and punctuation", value: "a1_-Z9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Encode(tc.value)
			require.NoError(t, err)

			back, err := Decode(a)
			require.NoError(t, err)
			assert.Equal(t, tc.value, back)
		})
	}
}

func TestKnownVectors(t *testing.T) {
	// Reference values produced by the original codec.
	s, err := Decode(Atom(1634560356))
	require.NoError(t, err)
	assert.Equal(t, "dima", s)

	s, err = Decode(Atom(7956003944985229683))
	require.NoError(t, err)
	assert.Equal(t, "syslogin", s)

	a, err := Encode("dima")
	require.NoError(t, err)
	assert.Equal(t, Atom(1634560356), a)
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	_, err := Encode("ninechars")
	require.Error(t, err)

	_, err = Encode("has space")
	require.Error(t, err)

	_, err = Encode("dot.ted")
	require.Error(t, err)
}

func TestDecodeRejectsInvalidBytes(t *testing.T) {
	// 0x20 (space) is not a permitted atom byte.
	_, err := Decode(Atom(0x20))
	require.Error(t, err)
}

func TestZero(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.Equal(t, "", Zero.String())

	a := MustEncode("app")
	assert.False(t, a.IsZero())
	assert.Equal(t, "app", a.String())
}
