package options

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseExpr parses a standalone HCL expression for tests.
func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parse %q: %s", src, diags.Error())
	return expr
}

func TestFlatten_Mapping(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "string and number values",
			src:      `{ "--dim" = 0, "--profile" = "nether" }`,
			expected: []string{"--dim", "0", "--profile", "nether"},
		},
		{
			name:     "boolean true is a bare flag",
			src:      `{ "--deleteexistingupdatefolder" = true }`,
			expected: []string{"--deleteexistingupdatefolder"},
		},
		{
			name:     "boolean false is a bare flag too",
			src:      `{ "--verbose" = false }`,
			expected: []string{"--verbose"},
		},
		{
			name:     "null behaves like a boolean",
			src:      `{ "--forceoverwrite" = null }`,
			expected: []string{"--forceoverwrite"},
		},
		{
			name:     "source order is preserved",
			src:      `{ "--zzz" = 1, "--aaa" = 2, "--mmm" = 3 }`,
			expected: []string{"--zzz", "1", "--aaa", "2", "--mmm", "3"},
		},
		{
			name:     "fractional numbers keep their fraction",
			src:      `{ "--brightness" = 0.5 }`,
			expected: []string{"--brightness", "0.5"},
		},
		{
			name:     "bare identifier keys",
			src:      `{ threads = 4 }`,
			expected: []string{"threads", "4"},
		},
		{
			name:     "empty mapping",
			src:      `{}`,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := FromExpression(parseExpr(t, tc.src))
			require.NoError(t, err)
			assert.Equal(t, Mapping, s.Kind())
			if diff := cmp.Diff(tc.expected, s.Flatten()); diff != "" {
				t.Errorf("flatten mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlatten_Sequence(t *testing.T) {
	s, err := FromExpression(parseExpr(t, `["--dim", 1, "--profile", "nether", true]`))
	require.NoError(t, err)
	assert.Equal(t, Sequence, s.Kind())

	got := s.Flatten()
	assert.Equal(t, []string{"--dim", "1", "--profile", "nether", "true"}, got)
	assert.Len(t, got, s.Len(), "sequence flattening is one token per element")
}

func TestFlatten_MappingEmitsKeyExactlyOnce(t *testing.T) {
	s, err := FromExpression(parseExpr(t, `{ "--flag" = true, "--other" = null }`))
	require.NoError(t, err)

	got := s.Flatten()
	assert.Equal(t, []string{"--flag", "--other"}, got)
}

func TestFromExpression_RejectsBadShapes(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "bare string", src: `"hello"`},
		{name: "bare number", src: `42`},
		{name: "nested mapping value", src: `{ "--opt" = { nested = 1 } }`},
		{name: "nested list value", src: `{ "--opt" = [1, 2] }`},
		{name: "null sequence element", src: `[1, null, 3]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromExpression(parseExpr(t, tc.src))
			require.Error(t, err)
		})
	}
}

func TestListFromExpression(t *testing.T) {
	list, err := ListFromExpression(parseExpr(t, `[{ "--dim" = 0 }, ["--dim", "1"]]`))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"--dim", "0"}, list[0].Flatten())
	assert.Equal(t, []string{"--dim", "1"}, list[1].Flatten())
}

func TestListFromExpression_RejectsNonList(t *testing.T) {
	_, err := ListFromExpression(parseExpr(t, `{ "--dim" = 0 }`))
	require.Error(t, err)

	_, err = ListFromExpression(parseExpr(t, `["--dim"]`))
	require.Error(t, err, "task entries must themselves be structures")
}
