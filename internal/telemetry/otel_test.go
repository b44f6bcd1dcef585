package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"memory_mapping/internal/config"
)

func TestNormalizeOTLPEndpoint(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "collector:4317", want: "collector:4317"},
		{raw: "http://collector:4317", want: "collector:4317"},
		{raw: "https://otel.example.com:4317/v1/traces", want: "otel.example.com:4317"},
	}
	for _, tc := range cases {
		got, err := normalizeOTLPEndpoint(tc.raw)
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got)
	}

	_, err := normalizeOTLPEndpoint("http://")
	require.Error(t, err)
}

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
