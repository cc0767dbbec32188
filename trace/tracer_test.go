package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core), nil), logs
}

func TestTracerLogsWhenEnabled(t *testing.T) {
	tr, logs := newObserved()

	tr.Compile(`name == "IBM"`, "tuple<rstring name>", "ALL_CLEAR")
	tr.CacheMiss(`name == "IBM"`)
	tr.CacheHit(`name == "IBM"`)
	tr.Evaluate(`name == "IBM"`, true, "ALL_CLEAR")
	tr.Subexpression(`name == "IBM"`, "1.1", true)
	tr.Fetch("name", "ALL_CLEAR")

	require.Equal(t, 6, logs.Len())
	require.Equal(t, "compile", logs.All()[0].Message)
	require.Equal(t, "fetch", logs.All()[5].Message)
}

func TestTracerNilAndDisabledAreNoops(t *testing.T) {
	var nilTracer *Tracer
	require.NotPanics(t, func() {
		nilTracer.Compile("x == 1", "tuple<int32 x>", "ALL_CLEAR")
	})

	disabled := New(nil, nil)
	require.False(t, disabled.enabled)
	require.NotPanics(t, func() {
		disabled.Evaluate("x == 1", true, "ALL_CLEAR")
	})
}

func TestTracerFiltersByGlobPattern(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tr := New(zap.New(core), []string{"name*"})

	tr.CacheHit(`name == "IBM"`)
	tr.CacheHit(`age > 1`)

	require.Equal(t, 1, logs.Len())
	require.Equal(t, `name == "IBM"`, logs.All()[0].ContextMap()["expr"])
}

func TestIsEnabledReflectsGlobalTracer(t *testing.T) {
	Init(nil)
	require.False(t, IsEnabled())

	tr, _ := newObserved()
	Init(tr)
	require.True(t, IsEnabled())
	Init(nil)
}
