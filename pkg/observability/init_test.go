package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
	"github.com/Sumatoshi-tech/obofang/pkg/observability"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "obofang", cfg.ServiceName)
	assert.Equal(t, observability.ModeCLI, cfg.Mode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5, cfg.ShutdownTimeoutSec)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Empty(t, cfg.MetricsFile)
}

func TestInit_NoopWhenNothingConfigured(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_LoggerWritesToConfiguredWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogWriter = &buf
	cfg.LogLevel = slog.LevelWarn

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	providers.Logger.Info("hidden")
	providers.Logger.Warn("shown", "path", "go.obo")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "go.obo", record["path"])
	assert.Equal(t, "obofang", record["service"])
	assert.Equal(t, "cli", record["mode"])
}

func TestInit_WritesMetricsFileOnShutdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "obofang.prom")

	cfg := observability.DefaultConfig()
	cfg.MetricsFile = path
	cfg.ServiceVersion = "1.0.0"

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	metrics, err := observability.NewParseMetrics(providers.Meter)
	require.NoError(t, err)

	metrics.RecordSuccess(context.Background(), "gzip", obo.Stats{Terms: 42, Relations: 50, Bytes: 1024})

	require.NoError(t, providers.Shutdown(context.Background()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, "obofang_parse_terms_total")
	assert.Contains(t, text, `compression="gzip"`)
	assert.Contains(t, text, "obofang_parse_runs_total")
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single", "key=value", map[string]string{"key": "value"}},
		{"multiple", "k1=v1,k2=v2", map[string]string{"k1": "v1", "k2": "v2"}},
		{"spaces", " k1 = v1 , k2 = v2 ", map[string]string{"k1": "v1", "k2": "v2"}},
		{"no_equals", "invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.input))
		})
	}
}
