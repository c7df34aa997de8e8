package observability

import (
	"context"
	"testing"

	"warungpos/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup_WithoutEndpointIsNoop(t *testing.T) {
	cfg := &config.Config{}

	tp, shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, tp)

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestNewLogger_SatisfiesLogger(t *testing.T) {
	var logger Logger = NewLogger(zapcore.WarnLevel)
	logger.Info("dropped below warn level", zap.Int("n", 1))
	assert.NotNil(t, logger.With(zap.String("k", "v")))
}
