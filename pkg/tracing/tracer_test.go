package tracing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("pokedex-proxy")

	assert.Equal(t, "pokedex-proxy", cfg.ServiceName)
	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), DefaultConfig("pokedex-proxy"))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_Enabled(t *testing.T) {
	cfg := DefaultConfig("pokedex-proxy")
	cfg.Endpoint = "localhost:4317"

	// The gRPC exporter connects lazily, so no collector is needed.
	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{rate: 1.0, want: "AlwaysOnSampler"},
		{rate: 2.0, want: "AlwaysOnSampler"},
		{rate: 0, want: "AlwaysOffSampler"},
		{rate: -1, want: "AlwaysOffSampler"},
		{rate: 0.5, want: "TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		desc := Sampler(tt.rate).Description()
		assert.True(t, strings.HasPrefix(desc, "ParentBased{root:"+tt.want), "rate %v: %s", tt.rate, desc)
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(Config{ServiceName: "pokedex-proxy", ServiceVersion: "0.1.0"})
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "pokedex-proxy", name.AsString())

	version, ok := set.Value(attribute.Key("service.version"))
	require.True(t, ok)
	assert.Equal(t, "0.1.0", version.AsString())
}
