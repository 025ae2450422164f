package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/tracing"
)

func TestInitTracer_DisabledIsNoop(t *testing.T) {
	shutdown, err := tracing.InitTracer(context.Background(), tracing.Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_UnknownExporter(t *testing.T) {
	shutdown, err := tracing.InitTracer(context.Background(), tracing.Config{
		Enabled:  true,
		Exporter: "carrier-pigeon",
	})
	assert.ErrorContains(t, err, "carrier-pigeon")
	assert.NoError(t, shutdown(context.Background()))
}

func TestGetTracer_StartsSpans(t *testing.T) {
	_, span := tracing.GetTracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.NotNil(t, span)
}
