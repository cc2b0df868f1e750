package formula

import (
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "number", input: "20", expected: "20"},
		{name: "decimal", input: "0.5", expected: "0.5"},
		{name: "leading dot", input: ".5", expected: "0.5"},
		{name: "trailing dot", input: "1.", expected: "1"},
		{name: "identifier", input: "close", expected: "close"},
		{name: "underscore identifier", input: "_x1", expected: "_x1"},
		{name: "precedence", input: "1 + 2 * 3", expected: "(1 + (2 * 3))"},
		{name: "parentheses", input: "(1 + 2) * 3", expected: "((1 + 2) * 3)"},
		{name: "left associative minus", input: "1 - 2 - 3", expected: "((1 - 2) - 3)"},
		{name: "left associative divide", input: "8 / 4 / 2", expected: "((8 / 4) / 2)"},
		{name: "call", input: "sma(close, 20)", expected: "sma(close, 20)"},
		{name: "call without args", input: "f()", expected: "f()"},
		{name: "call with spaces", input: "ema ( close , 21 )", expected: "ema(close, 21)"},
		{name: "nested call", input: "boll_upper(sma(close,5), 20, 2.5)", expected: "boll_upper(sma(close, 5), 20, 2.5)"},
		{name: "surrounding whitespace", input: "\n\t close * 2  ", expected: "(close * 2)"},
		{name: "mixed", input: "close - sma(close, 50) / 2", expected: "(close - (sma(close, 50) / 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node.String())
		})
	}
}

func TestParseNodeKinds(t *testing.T) {
	node, err := Parse("sma(close, 20) + 1")
	require.NoError(t, err)

	bin, ok := node.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, byte('+'), bin.Op)

	call, ok := bin.Left.(*CallNode)
	require.True(t, ok)
	assert.Equal(t, "sma", call.Name)
	require.Len(t, call.Args, 2)
	assert.Equal(t, &IdentifierNode{Name: "close"}, call.Args[0])
	assert.Equal(t, &NumberNode{Value: 20}, call.Args[1])

	assert.Equal(t, &NumberNode{Value: 1}, bin.Right)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		offset   int
		expected string
		found    string
	}{
		{name: "empty", input: "", offset: 0, expected: "expression", found: "end of input"},
		{name: "unclosed call", input: "sma(close, 20", offset: 13, expected: "')'", found: "end of input"},
		{name: "unclosed group", input: "(1 + 2", offset: 6, expected: "')'", found: "end of input"},
		{name: "unknown character", input: "1 + $", offset: 4, expected: "number, identifier or '('", found: "'$'"},
		{name: "dangling operator", input: "1 +", offset: 3, expected: "expression", found: "end of input"},
		{name: "trailing identifier", input: "close close", offset: 6, expected: "operator or end of input", found: "'c'"},
		{name: "extra closing paren", input: "(1 + 2))", offset: 7, expected: "operator or end of input", found: "')'"},
		{name: "empty argument", input: "sma(close,)", offset: 10, expected: "number, identifier or '('", found: "')'"},
		{name: "unary minus", input: "-1", offset: 0, expected: "number, identifier or '('", found: "'-'"},
		{name: "double dot", input: "1.2.3", offset: 3, expected: "operator or end of input", found: "'.'"},
		{name: "non ascii", input: "close × 2", offset: 6, expected: "operator or end of input", found: "'×'"},
		{name: "missing comma", input: "sma(close 20)", offset: 10, expected: "')'", found: "'2'"},
		{name: "offset counts leading whitespace", input: "   1 +", offset: 6, expected: "expression", found: "end of input"},
		{name: "bad character after indent", input: "   #", offset: 3, expected: "number, identifier or '('", found: "'#'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, node)

			var syntaxErr *errors.SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "expected SyntaxError, got %T", err)
			assert.Equal(t, tt.offset, syntaxErr.Offset)
			assert.Equal(t, tt.expected, syntaxErr.Expected)
			assert.Equal(t, tt.found, syntaxErr.Found)
			assert.Contains(t, err.Error(), "pos")
		})
	}
}

func TestParseNestingLimit(t *testing.T) {
	t.Run("groups at the limit parse", func(t *testing.T) {
		input := strings.Repeat("(", MaxDepth) + "1" + strings.Repeat(")", MaxDepth)

		node, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, "1", node.String())
	})

	t.Run("deeply nested groups are rejected", func(t *testing.T) {
		input := strings.Repeat("(", 3_000_000) + "1" + strings.Repeat(")", 3_000_000)

		node, err := Parse(input)
		require.Error(t, err)
		assert.Nil(t, node)

		var syntaxErr *errors.SyntaxError
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, MaxDepth+1, syntaxErr.Offset)
		assert.Equal(t, "shallower nesting", syntaxErr.Expected)
		assert.Equal(t, "'('", syntaxErr.Found)
	})

	t.Run("deeply nested calls are rejected", func(t *testing.T) {
		input := strings.Repeat("sma(", MaxDepth+1) + "close" + strings.Repeat(", 2)", MaxDepth+1)

		_, err := Parse(input)
		require.Error(t, err)
		assert.True(t, errors.IsSyntaxError(err))
		assert.Contains(t, err.Error(), "shallower nesting")
	})

	t.Run("depth is released between siblings", func(t *testing.T) {
		group := strings.Repeat("(", MaxDepth) + "1" + strings.Repeat(")", MaxDepth)

		_, err := Parse(group + " + " + group)
		require.NoError(t, err)
	})
}
