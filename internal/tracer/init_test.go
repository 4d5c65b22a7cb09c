package tracer

import (
	"context"
	"testing"

	"portfolio-content-be/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(&config.Config{})
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerEnabled(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Environment: "test"},
		Tracing: config.TracingConfig{Enabled: true, Endpoint: "localhost:4318", SampleRatio: 1},
	}
	shutdown := InitTracer(cfg)

	// Nothing was recorded, so shutdown has no spans to push.
	assert.NoError(t, shutdown(context.Background()))
}
