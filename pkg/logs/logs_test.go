package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/interiora_backend/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestMultiHandler(t *testing.T) {
	var debug, warn bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	log := slog.New(h).With("lead_id", "abc")

	log.Info("lead: saved")
	log.Warn("lead: notification failed")

	assert.Contains(t, debug.String(), "lead: saved")
	assert.Contains(t, debug.String(), "lead_id=abc")
	assert.NotContains(t, warn.String(), "lead: saved")
	assert.Contains(t, warn.String(), "lead: notification failed")
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestLokiPayload(t *testing.T) {
	lw := &lokiWriter{labels: map[string]string{"service": "interiora", "env": "production"}}
	body, err := lw.payload([]byte(`{"msg":"say \"hi\""}`+"\n"), time.Unix(0, 42))
	require.NoError(t, err)

	var got lokiPush
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Streams, 1)
	assert.Equal(t, "interiora", got.Streams[0].Stream["service"])
	assert.Equal(t, [2]string{"42", `{"msg":"say \"hi\""}`}, got.Streams[0].Values[0])
}

func TestLokiWriter_Pushes(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Logging.Output.Loki.Endpoint = srv.URL
	cfg.Observability.ServiceName = "interiora"

	log := slog.New(newLokiHandler(cfg, slog.LevelInfo))
	log.Info("hello loki")

	assert.True(t, strings.Contains(received, "hello loki"))
}
