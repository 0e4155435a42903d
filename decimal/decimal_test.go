package decimal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := &Builder{}
	require.Equal(t, 0, b.Len())
	require.Equal(t, "", b.String())

	b.PushString("e+")
	b.PushByte('2')
	b.PushByte('1')
	b.PushByte('3')
	b.Reverse(2)
	require.Equal(t, "e+312", b.String())
	require.Equal(t, 5, b.Len())

	b.Reset()
	require.Equal(t, 0, b.Len())

	b.Grow(64)
	require.GreaterOrEqual(t, cap(b.Bytes()), 64)

	for i := 0; i < 1000; i++ {
		b.PushByte('0' + byte(i%10))
	}
	require.Equal(t, 1000, b.Len())
	require.Equal(t, "0123456789", b.String()[:10])
}

func TestBuilderReverse(t *testing.T) {
	type TC struct {
		in     string
		from   int
		output string
	}

	tcs := []TC{
		{in: "", from: 0, output: ""},
		{in: "a", from: 0, output: "a"},
		{in: "ab", from: 0, output: "ba"},
		{in: "abc", from: 1, output: "acb"},
		{in: "abcd", from: 4, output: "abcd"},
	}

	for _, tc := range tcs {
		b := &Builder{}
		b.PushString(tc.in)
		b.Reverse(tc.from)

		require.Equal(t, tc.output, b.String())
	}
}
