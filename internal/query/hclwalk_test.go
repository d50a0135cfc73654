package query

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCalls(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []string
	}{
		{name: "no calls", src: `name.text == "hello"`, want: []string{}},
		{name: "single call", src: `length(parameters) > 0`, want: []string{"length"}},
		{name: "nested in arguments", src: `upper(lower(name.text))`, want: []string{"lower", "upper"}},
		{name: "repeated call", src: `length(a) == length(b)`, want: []string{"length"}},
		{name: "conditional", src: `exported ? max(1, 2) : min(1, 2)`, want: []string{"max", "min"}},
		{name: "template", src: `"${lower(name.text)}-x"`, want: []string{"lower"}},
		{name: "for expression", src: `[for p in parameters : upper(p.name.text) if contains(["a"], p.name.text)]`, want: []string{"contains", "upper"}},
		{name: "object and index", src: `{k = join(",", xs)}[keys(m)[0]]`, want: []string{"join", "keys"}},
		{name: "unknown name is still listed", src: `nope(1)`, want: []string{"nope"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expr, diags := hclsyntax.ParseExpression([]byte(tc.src), "query.hcl", hcl.InitialPos)
			require.False(t, diags.HasErrors(), diags.Error())
			assert.Equal(t, tc.want, queryCalls(expr))
		})
	}
}
