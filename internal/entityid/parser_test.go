// internal/entityid/parser_test.go
package entityid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyrig/chassis/internal/atom"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		raw        string
		expectErr  bool
		expectedID EntityID
	}{
		{
			name: "system and address only",
			raw:  "dealer::I9973OD",
			expectedID: EntityID{
				System:  atom.MustEncode("dealer"),
				Address: "I9973OD",
			},
		},
		{
			name: "type qualifier",
			raw:  "car@dealer::1A8987339HBz0909W874",
			expectedID: EntityID{
				System:  atom.MustEncode("dealer"),
				Type:    atom.MustEncode("car"),
				Address: "1A8987339HBz0909W874",
			},
		},
		{
			name: "full form with schema",
			raw:  "car.vin@dealer::1A8987339HBz0909W874",
			expectedID: EntityID{
				System:  atom.MustEncode("dealer"),
				Type:    atom.MustEncode("car"),
				Schema:  atom.MustEncode("vin"),
				Address: "1A8987339HBz0909W874",
			},
		},
		{
			name: "composite json address",
			raw:  `doc@vault::{"k":1}`,
			expectedID: EntityID{
				System:  atom.MustEncode("vault"),
				Type:    atom.MustEncode("doc"),
				Address: `{"k":1}`,
			},
		},
		{name: "error - no system divider", raw: "dealer.car", expectErr: true},
		{name: "error - empty address", raw: "dealer::", expectErr: true},
		{name: "error - empty system", raw: "::addr", expectErr: true},
		{name: "error - empty type", raw: "@dealer::addr", expectErr: true},
		{name: "error - empty schema", raw: "car.@dealer::addr", expectErr: true},
		{name: "error - system not an atom", raw: "deal er::addr", expectErr: true},
		{name: "error - type too long for atom", raw: "ninechars@dealer::addr", expectErr: true},
		{name: "error - too short", raw: "a::", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				_, ok := TryParse(tc.raw)
				assert.False(t, ok)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expectedID.Equal(id), "parsed id does not match expected id")
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"dealer::I9973OD",
		"car@dealer::1A8987339HBz0909W874",
		"car.vin@dealer::1A8987339HBz0909W874",
	} {
		id, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	}
}

func TestCompositeAddress(t *testing.T) {
	id, err := Parse(`doc@vault::{"k":1,"name":"x"}`)
	require.NoError(t, err)
	require.True(t, id.IsCompositeAddress())

	m, err := id.CompositeAddress()
	require.NoError(t, err)
	assert.Equal(t, float64(1), m["k"])
	assert.Equal(t, "x", m["name"])

	plain, err := Parse("dealer::I9973OD")
	require.NoError(t, err)
	assert.False(t, plain.IsCompositeAddress())
	m, err = plain.CompositeAddress()
	require.NoError(t, err)
	assert.Nil(t, m)

	bad, err := Parse("doc@vault::{not json}")
	require.NoError(t, err)
	_, err = bad.CompositeAddress()
	require.Error(t, err)
}
