package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/titanous/json5"
)

func TestEndpointConfigProtocolSelection(t *testing.T) {
	var c config
	err := json5.Unmarshal([]byte(`{
		otlp: {
			// grpc wins when both endpoints are configured
			traces: {
				grpc_endpoint: "https://collector:4317",
				http_endpoint: "https://collector:4318",
				headers: {authorization: "Bearer x"},
			},
			metrics: {
				http_endpoint: "https://collector:4318",
			},
		},
	}`), &c)
	require.NoError(t, err)

	require.Equal(t, "grpc", c.Otlp.Traces.protocol())
	require.Equal(t, "https://collector:4317", c.Otlp.Traces.endpoint())
	require.Equal(t, "Bearer x", c.Otlp.Traces.Headers["authorization"])

	require.Equal(t, "http", c.Otlp.Metrics.protocol())
	require.Equal(t, "https://collector:4318", c.Otlp.Metrics.endpoint())
}
