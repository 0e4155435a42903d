package fault

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type halted struct{}

func TestAbort(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	prev := halt
	defer func() { halt = prev }()

	calls := 0
	halt = func() {
		calls++
		panic(halted{})
	}

	require.PanicsWithValue(t, halted{}, Abort)
	require.Equal(t, 1, calls)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "abort", entries[0].Message)
	require.Contains(t, entries[0].ContextMap(), "stack")
}

func TestErrorText(t *testing.T) {
	type TC struct {
		code int
		text string
	}

	tcs := []TC{
		{code: 0, text: "err: 0"},
		{code: 2, text: "err: 2"},
		{code: -1, text: "err: -1"},
		{code: 10001, text: "err: 10001"},
		{code: 123456789, text: "err: 123456789"},
		{code: 1234567890, text: "err: 123456789"},
		{code: math.MinInt32, text: "err: -21474836"},
	}

	for _, tc := range tcs {
		require.Equal(t, tc.text, ErrorText(tc.code))
		require.LessOrEqual(t, len(ErrorText(tc.code)), maxText)
	}
}

func TestErrno(t *testing.T) {
	var err error = Errno(5)

	require.EqualError(t, err, "err: 5")

	var e Errno
	require.True(t, errors.As(err, &e))
	require.Equal(t, Errno(5), e)
}
