// internal/nodeid/address_test.go
package nodeid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_String(t *testing.T) {
	testCases := []struct {
		name        string
		addr        Address
		expectedStr string
	}{
		{
			name: "simple path",
			addr: Address{
				Path: []PathSegment{NewPathSegment("body"), NewPathSegment("statements")},
			},
			expectedStr: "body.statements",
		},
		{
			name: "path with indices",
			addr: Address{
				Path: []PathSegment{NewPathSegmentWithIndex("statements", 0), NewPathSegmentWithIndex("members", 15)},
			},
			expectedStr: "statements[0].members[15]",
		},
		{
			name:        "root address",
			addr:        Root(),
			expectedStr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.addr.String())
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	testIDs := []string{
		"",
		"statements[0]",
		"statements[0].body.statements[2].expression",
		"members[15].type",
	}

	for _, id := range testIDs {
		t.Run(id, func(t *testing.T) {
			addr, err := Parse(id)
			require.NoError(t, err)

			roundTripID := addr.String()
			assert.Equal(t, id, roundTripID)

			roundTripAddr, err := Parse(roundTripID)
			require.NoError(t, err)
			assert.True(t, addr.Equal(roundTripAddr))
		})
	}
}

func TestAddress_Equal(t *testing.T) {
	addr1 := MustParse("statements.members[0]")
	addr2 := MustParse("statements.members[0]")
	addr3 := MustParse("statements.members[1]")
	addr4 := MustParse("statements.params[0]")

	assert.True(t, addr1.Equal(addr2))
	assert.False(t, addr1.Equal(addr3))
	assert.False(t, addr1.Equal(addr4))
	assert.False(t, addr1.Equal(Root()))
	assert.True(t, Root().Equal(Address{}))
}

func TestAddress_Append(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		segments []string
		expected string
	}{
		{name: "field onto root", base: "", segments: []string{"statements"}, expected: "statements"},
		{name: "field and index", base: "", segments: []string{"statements", "0"}, expected: "statements[0]"},
		{name: "nested", base: "statements[0]", segments: []string{"body", "statements", "3", "expression"}, expected: "statements[0].body.statements[3].expression"},
		{name: "no segments", base: "statements[1]", segments: nil, expected: "statements[1]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base := MustParse(tc.base)
			got := base.Append(tc.segments...)
			assert.Equal(t, tc.expected, got.String())
			assert.Equal(t, tc.base, base.String(), "receiver must not change")
		})
	}
}

func TestAddress_AppendDoesNotAlias(t *testing.T) {
	base := MustParse("statements[0].body")
	a := base.Append("statements", "1")
	b := base.Append("statements", "2")

	assert.Equal(t, "statements[0].body.statements[1]", a.String())
	assert.Equal(t, "statements[0].body.statements[2]", b.String())
	assert.Equal(t, "statements[0].body", base.String())
}

func TestAddress_AppendPanicsOnDanglingIndex(t *testing.T) {
	assert.Panics(t, func() { Root().Append("0") })
	assert.Panics(t, func() { Root().Append("statements", "-1") })
	assert.Panics(t, func() { Root().Append("-1") })
	assert.Panics(t, func() { MustParse("statements[0]").Append("1") })
}

func TestAddress_IndexAndField(t *testing.T) {
	addr := Root().Index("statements", 2).Field("body")
	assert.Equal(t, "statements[2].body", addr.String())
	assert.False(t, addr.IsRoot())
	assert.True(t, Root().IsRoot())
}

func TestAddress_JSON(t *testing.T) {
	type wrapper struct {
		Path Address `json:"path"`
	}

	raw, err := json.Marshal(wrapper{Path: MustParse("statements[0].type")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"statements[0].type"}`, string(raw))

	var decoded wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"path":"members[3]"}`), &decoded))
	assert.Equal(t, "members[3]", decoded.Path.String())

	require.Error(t, json.Unmarshal([]byte(`{"path":"members[x]"}`), &decoded))
}
