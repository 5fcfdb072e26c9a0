package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vango-refs/internal/config"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(config.TraceConfig{}, nil)
	require.NoError(t, err)
	require.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "x")
	require.False(t, span.IsRecording())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Stdout(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProvider(config.TraceConfig{Enabled: true, Exporter: "stdout"}, &buf)
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "refs.Created")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	require.Contains(t, buf.String(), `"Name": "refs.Created"`)
	require.Contains(t, buf.String(), serviceName)

	require.False(t, p.Enabled())
	_, after := p.Tracer().Start(context.Background(), "late")
	require.False(t, after.IsRecording())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	_, err := NewProvider(config.TraceConfig{Enabled: true, Exporter: "zipkin"}, nil)
	require.Error(t, err)
}
