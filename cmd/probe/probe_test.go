package probe

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/config"
)

func TestLivenessProbe(t *testing.T) {
	cfg := config.Server{Storage: config.Storage{DataDir: t.TempDir()}}
	require.NoError(t, livenessProbe(cfg))

	entries, err := os.ReadDir(cfg.Storage.DataDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLivenessProbeMissingDir(t *testing.T) {
	cfg := config.Server{Storage: config.Storage{DataDir: filepath.Join(t.TempDir(), "missing")}}
	require.Error(t, livenessProbe(cfg))
}

func TestReadinessURL(t *testing.T) {
	tests := []struct {
		listen string
		want   string
	}{
		{":8080", "http://127.0.0.1:8080/-/ready"},
		{"0.0.0.0:9000", "http://0.0.0.0:9000/-/ready"},
		{"localhost:8080", "http://localhost:8080/-/ready"},
	}

	for _, tt := range tests {
		t.Run(tt.listen, func(t *testing.T) {
			cfg := config.Server{Echo: config.EchoServer{ListenAddress: tt.listen}}
			assert.Equal(t, tt.want, readinessURL(cfg))
		})
	}
}

func TestReadinessProbe(t *testing.T) {
	var ready atomic.Bool
	ready.Store(true)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if !ready.Load() {
			w.WriteHeader(521)
			_, _ = w.Write([]byte("Not ready."))
			return
		}
		_, _ = w.Write([]byte("Ready."))
	}))
	defer srv.Close()

	body, err := readinessProbe(t.Context(), srv.URL+"/-/ready")
	require.NoError(t, err)
	assert.Equal(t, "Ready.", body)

	ready.Store(false)
	_, err = readinessProbe(t.Context(), srv.URL+"/-/ready")
	require.Error(t, err)
}
